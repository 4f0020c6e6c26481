// Package rod fetches pages through headless Chrome so that content built by
// JavaScript is present in the returned HTML.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagetext"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	timeout     time.Duration
	renderDelay time.Duration
	managerOpts []ManagerOption
	closed      atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderDelay waits d after the load event before the DOM is
// serialized, for pages that keep rendering after load.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithBrowserOptions passes opts to the underlying BrowserManager.
func WithBrowserOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher backed
// by it. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", pagetext.Errorf(pagetext.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser, release := f.manager.Acquire()
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
