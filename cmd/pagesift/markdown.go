package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/fs"
)

// Run executes the markdown command.
func (c *MarkdownCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	title, cleaned, err := deps.Clean(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	md, err := deps.Converter.Convert(cleaned, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	if c.Dir == "" {
		_, err := fmt.Fprint(deps.Stdout, md)
		return err
	}
	path, err := fs.NewMarkdownDir(c.Dir).WritePage(c.URL, title, md, time.Now())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "wrote %s\n", path)
	return nil
}
