// Package http fetches pages and sitemaps over plain HTTP, without
// JavaScript rendering.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies pagetext to servers.
const DefaultUserAgent = "pagetext/1.0"

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Response bodies are decoded to UTF-8 using the Content-Type charset, a
// <meta> declaration or content sniffing, in that order.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagetext.Errorf(pagetext.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", pagetext.Errorf(pagetext.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if errors.Is(err, io.EOF) {
		// Empty body.
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
