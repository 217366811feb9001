package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/pagesift"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	hint, err := pagesift.ParseCategory(c.Category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	if c.URL == "" {
		err := pagesift.Errorf(pagesift.EINVALID, "a page URL is required, also with --file, to resolve relative links")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	html, err := c.markup(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	result, err := deps.Scraper.Scrape(html, c.URL, hint)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	if len(result.Records) == 0 {
		warnEmpty(deps.Stderr, c.URL, result.Category)
	}

	if c.Save {
		run := &pagesift.Run{SourceURL: c.URL, Hint: hint, Category: result.Category, Records: result.Records}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "saved run %s\n", run.ID)
	}

	return c.emit(deps, result.Records)
}

// markup returns the page HTML from --file or the fetcher.
func (c *ScrapeCmd) markup(deps *Dependencies) (string, error) {
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", pagesift.Errorf(pagesift.EINVALID, "reading %s: %v", c.File, err)
		}
		return string(data), nil
	}
	return deps.Fetcher.Fetch(deps.Ctx, c.URL)
}
