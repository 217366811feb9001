package main

import (
	"fmt"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/crawl"
	"github.com/fwojciec/pagesift/runewidth"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	hint, err := pagesift.ParseCategory(c.Category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	urls, err := c.collectURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		err := pagesift.Errorf(pagesift.EINVALID, "no URLs to scrape; pass URLs or --sitemap")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	batch := &crawl.Batch{
		Fetcher:     deps.Fetcher,
		Scraper:     deps.Scraper,
		RateLimiter: crawl.NewDomainLimiter(c.RPS),
		Hint:        hint,
		Concurrency: c.Concurrency,
		RetryDelays: deps.RetryDelays,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "scraping %d pages\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %d records\n", event.Completed, event.Total, runewidth.Tail(event.URL, 60), event.Records)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] skip %s: %s\n", event.Completed, event.Total, runewidth.Tail(event.URL, 60), pagesift.ErrorMessage(event.Error))
		}
	}

	results, runErr := batch.Run(deps.Ctx, urls, progress)

	var failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case len(r.Records) == 0:
			warnEmpty(deps.Stderr, r.URL, r.Category)
		}
		if r.Err == nil && c.Save {
			run := &pagesift.Run{SourceURL: r.URL, Hint: hint, Category: r.Category, Records: r.Records}
			if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
				fmt.Fprintf(deps.Stderr, "error: saving %s: %s\n", r.URL, pagesift.ErrorMessage(err))
				return err
			}
		}
	}

	records := crawl.Records(results)
	fmt.Fprintf(deps.Stderr, "scraped %d pages (%d failed), %d records\n", len(results)-failed, failed, len(records))
	if runErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", runErr)
		return runErr
	}
	return c.emit(deps, records)
}

// collectURLs merges URL arguments with sitemap discovery, keeping the
// first occurrence of each URL.
func (c *BatchCmd) collectURLs(deps *Dependencies) ([]string, error) {
	urls := append([]string(nil), c.URLs...)
	if c.Sitemap != "" {
		filter, err := pagesift.NewURLFilter(c.Include, c.Exclude)
		if err != nil {
			return nil, err
		}
		found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}

	seen := make(map[string]bool, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out, nil
}
