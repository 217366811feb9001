package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/bloom"
	"github.com/fwojciec/pagesift/fs"
	"github.com/fwojciec/pagesift/runewidth"
	pagesiftslog "github.com/fwojciec/pagesift/slog"
)

// emit applies the output flags to records: optional de-duplication, then
// a file or stdout in the chosen format.
func (f *OutputFlags) emit(deps *Dependencies, records []*pagesift.Record) error {
	if f.Dedupe {
		before := len(records)
		records = bloom.NewDeduper(bloom.DefaultExpectedRecords, bloom.DefaultFalsePositiveRate).Dedupe(records)
		if dropped := before - len(records); dropped > 0 {
			fmt.Fprintf(deps.Stderr, "dropped %d duplicate records\n", dropped)
		}
	}

	if f.Output != "" {
		w := pagesiftslog.NewLoggingRecordWriter(fs.NewRecordFile(f.Output), deps.Logger)
		if err := w.WriteRecords(deps.Ctx, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "wrote %d records to %s\n", len(records), f.Output)
		return nil
	}
	return writeRecords(deps.Stdout, records, f.Format)
}

// writeRecords prints records as an indented JSON array or a table.
func writeRecords(w io.Writer, records []*pagesift.Record, format string) error {
	if format == "table" {
		return runewidth.NewTable(w, runewidth.DefaultMaxWidth).WriteRecords(records)
	}
	if records == nil {
		records = []*pagesift.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

// warnEmpty tells the user when heuristics found nothing on a page.
func warnEmpty(w io.Writer, url string, category pagesift.Category) {
	fmt.Fprintf(w, "warning: no records found on %s (processed as %s); the page may not match the built-in heuristics\n", url, category)
}
