package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of renders before the browser is
// replaced.
const DefaultMaxPages = 75

// BrowserManager owns the Chrome process behind a Fetcher and replaces it
// after maxPages renders.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int64
	maxPages int64
	open     int
	recycles int
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many renders a browser serves before it is replaced.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, l
	return bm, nil
}

// Acquire returns the browser to open one page on and a release func that
// must be called once that page is closed. When the render count has reached
// maxPages the browser is replaced, but only while no page is open on it;
// until then the current browser keeps serving. A failed replacement keeps
// the old browser. Call IncrementPageCount after each rendered page.
func (bm *BrowserManager) Acquire() (*rod.Browser, func()) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if !bm.closed && bm.open == 0 && bm.maxPages > 0 && bm.rendered >= bm.maxPages {
		if browser, l, err := launch(); err == nil {
			shutdown(bm.browser, bm.launcher)
			bm.browser, bm.launcher = browser, l
			bm.rendered = 0
			bm.recycles++
		}
	}

	bm.open++
	var once sync.Once
	return bm.browser, func() {
		once.Do(func() {
			bm.mu.Lock()
			bm.open--
			bm.mu.Unlock()
		})
	}
}

// IncrementPageCount records one rendered page.
func (bm *BrowserManager) IncrementPageCount() {
	bm.mu.Lock()
	bm.rendered++
	bm.mu.Unlock()
}

// Recycles returns how many times the browser has been replaced.
func (bm *BrowserManager) Recycles() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.recycles
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	err := shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = nil, nil
	return err
}

// launch starts a headless browser with background throttling disabled, so
// pages render at full speed while not focused.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
