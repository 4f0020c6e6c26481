package batch

import (
	"context"
	"strconv"

	"github.com/fwojciec/pagetext"
)

var _ pagetext.InputSource = (*SitemapSource)(nil)

// SitemapSource lists the pages of a site from its sitemaps. The i-th URL
// is stored as <i>.json, the same naming a URL list uses.
type SitemapSource struct {
	Sitemaps pagetext.SitemapService
	BaseURL  string
	Filter   *pagetext.URLFilter
}

// Inputs discovers the site's URLs and numbers them in sitemap order.
func (s *SitemapSource) Inputs(ctx context.Context) ([]pagetext.Input, error) {
	urls, err := s.Sitemaps.DiscoverURLs(ctx, s.BaseURL, s.Filter)
	if err != nil {
		return nil, err
	}

	inputs := make([]pagetext.Input, len(urls))
	for i, u := range urls {
		inputs[i] = pagetext.Input{Name: strconv.Itoa(i) + ".json", Target: u}
	}
	return inputs, nil
}
