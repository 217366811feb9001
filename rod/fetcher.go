package rod

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Ensure Fetcher implements pagesift.Fetcher at compile time.
var _ pagesift.Fetcher = (*Fetcher)(nil)

const (
	// DefaultFetchTimeout bounds a single fetch including the render wait.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultWait is how long a loaded page is given to render dynamic
	// content before its HTML is read.
	DefaultWait = 2 * time.Second
)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Pages open in stealth mode by default, which hides the usual automation
// flags, and each page gets a user agent picked from a pool.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	wait         time.Duration
	stealth      bool
	userAgents   []string
	maxPages     int64
	closed       atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the timeout of a single fetch.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithWait sets how long to wait after load for dynamic content.
func WithWait(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.wait = d
	}
}

// WithStealth enables or disables stealth pages.
func WithStealth(enabled bool) FetcherOption {
	return func(f *Fetcher) {
		f.stealth = enabled
	}
}

// WithUserAgents sets the pool of user agents to pick from. An empty pool
// keeps the browser's own user agent.
func WithUserAgents(agents []string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgents = agents
	}
}

// WithBrowserRecycling sets the number of pages after which the browser
// is restarted.
func WithBrowserRecycling(pages int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxPages = pages
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		wait:         DefaultWait,
		stealth:      true,
		maxPages:     DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL, waits for dynamic content and returns the
// rendered HTML. Failures are returned as *pagesift.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", pagesift.Errorf(pagesift.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", &pagesift.FetchError{URL: url, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	html, err := f.render(ctx, url)
	if err != nil {
		return "", &pagesift.FetchError{URL: url, Err: err}
	}
	f.manager.IncrementPageCount()
	return html, nil
}

func (f *Fetcher) render(ctx context.Context, url string) (string, error) {
	page, err := f.openPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if ua := f.userAgent(); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			return "", err
		}
	}
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.wait > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.wait):
		}
	}
	return page.HTML()
}

func (f *Fetcher) openPage() (*rod.Page, error) {
	browser := f.manager.Browser()
	if f.stealth {
		return stealth.Page(browser)
	}
	return browser.Page(proto.TargetCreateTarget{})
}

func (f *Fetcher) userAgent() string {
	if len(f.userAgents) == 0 {
		return ""
	}
	return f.userAgents[rand.IntN(len(f.userAgents))]
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
