// Package http provides plain HTTP implementations of pagesift.Fetcher and
// pagesift.SitemapService for pages that render without JavaScript.
package http

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/fwojciec/pagesift"
)

const (
	// DefaultFetchTimeout is the default timeout for HTTP requests.
	DefaultFetchTimeout = 15 * time.Second

	// MaxBodySize caps the bytes read from a single page.
	MaxBodySize = 16 << 20
)

// Ensure Fetcher implements pagesift.Fetcher at compile time.
var _ pagesift.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML with a single GET request. It executes no
// JavaScript, so it only suits server-rendered pages, but it is far
// cheaper than a browser.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgents []string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgents sets the pool the User-Agent header is picked from.
func WithUserAgents(agents []string) Option {
	return func(f *Fetcher) {
		f.userAgents = agents
	}
}

// WithClient replaces the underlying HTTP client. Its Timeout is
// overwritten by WithTimeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{},
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	client := *f.client
	client.Timeout = f.timeout
	f.client = &client
	return f
}

// Fetch retrieves the HTML content from the given URL. Failures are
// returned as *pagesift.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.fetch(ctx, url)
	if err != nil {
		return "", &pagesift.FetchError{URL: url, Err: err}
	}
	return html, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if len(f.userAgents) > 0 {
		req.Header.Set("User-Agent", f.userAgents[rand.IntN(len(f.userAgents))])
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close is a no-op; http.Client needs no explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
