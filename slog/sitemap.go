package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetext"
)

// Ensure LoggingSitemapService implements pagetext.SitemapService.
var _ pagetext.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService and logs each discovery.
type LoggingSitemapService struct {
	next   pagetext.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next pagetext.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how many URLs the
// site yielded after filtering.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagetext.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"filtered", filter != nil,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
