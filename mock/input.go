package mock

import (
	"context"

	"github.com/fwojciec/pagetext"
)

var (
	_ pagetext.InputSource    = (*InputSource)(nil)
	_ pagetext.SitemapService = (*SitemapService)(nil)
)

// InputSource is a mock implementation of pagetext.InputSource.
type InputSource struct {
	InputsFn func(ctx context.Context) ([]pagetext.Input, error)
}

func (s *InputSource) Inputs(ctx context.Context) ([]pagetext.Input, error) {
	return s.InputsFn(ctx)
}

// SitemapService is a mock implementation of pagetext.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *pagetext.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagetext.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
