package main

import (
	"fmt"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/runewidth"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := pagesift.RunFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}
	if c.Category != "" {
		category, err := pagesift.ParseCategory(c.Category)
		if err != nil || category.IsAuto() {
			err := pagesift.Errorf(pagesift.EINVALID, "unknown category %q", c.Category)
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
			return err
		}
		filter.Category = &category
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'pagesift scrape --save' to record one.")
		return nil
	}
	return runewidth.NewTable(deps.Stdout, 0).WriteRuns(runs)
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "%s  %s  %s  %d records\n", run.ID, run.Category, run.SourceURL, len(run.Records))
	return writeRecords(deps.Stdout, run.Records, c.Format)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pagesift.Errorf(pagesift.EINVALID, "use --force to confirm deletion")
	}
	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
