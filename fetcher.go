package pagetext

import "context"

// Fetcher retrieves page HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the URL and returns its HTML decoded to UTF-8.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter throttles requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
