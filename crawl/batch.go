// Package crawl scrapes batches of pages: it fetches each URL with retry
// and per-domain rate limiting, hands the markup to a Scraper, and reports
// progress as pages complete.
package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/pagesift"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once when Batch
// does not set one.
const DefaultConcurrency = 4

// Batch fetches and scrapes many pages concurrently.
type Batch struct {
	Fetcher     pagesift.Fetcher
	Scraper     pagesift.Scraper
	RateLimiter pagesift.DomainLimiter
	Hint        pagesift.Category
	Concurrency int
	RetryDelays []time.Duration
}

// PageResult is the outcome for one URL of a batch.
type PageResult struct {
	Position int
	URL      string
	Category pagesift.Category
	Records  []*pagesift.Record
	Err      error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Records   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

// Run scrapes every URL and returns one result per URL in input order.
// A failing page is recorded in its PageResult and does not stop the rest
// of the batch. The returned error is non-nil only when ctx ends first.
func (b *Batch) Run(ctx context.Context, urls []string, progress ProgressFunc) ([]*PageResult, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan *PageResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- b.scrape(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*PageResult, total)
	completed := 0
	for r := range resultCh {
		completed++
		results[r.Position] = r

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       r.URL,
			Records:   len(r.Records),
		}
		if r.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.Err
		}
		progress(event)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	return results, ctx.Err()
}

// scrape fetches and scrapes a single page.
func (b *Batch) scrape(ctx context.Context, position int, url string) *PageResult {
	result := &PageResult{Position: position, URL: url}

	if b.RateLimiter != nil {
		if err := b.RateLimiter.Wait(ctx, Domain(url)); err != nil {
			result.Err = err
			return result
		}
	}

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, url, b.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.Err = err
		return result
	}

	hint := b.Hint
	if hint == "" {
		hint = pagesift.CategoryAuto
	}
	scraped, err := b.Scraper.Scrape(html, url, hint)
	if err != nil {
		result.Err = err
		return result
	}
	result.Category = scraped.Category
	result.Records = scraped.Records
	return result
}

// Records flattens the records of successful pages in input order.
func Records(results []*PageResult) []*pagesift.Record {
	var out []*pagesift.Record
	for _, r := range results {
		if r == nil || r.Err != nil {
			continue
		}
		out = append(out, r.Records...)
	}
	return out
}
