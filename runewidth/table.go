// Package runewidth presents records and runs as aligned terminal tables.
// Column widths are measured in display cells so CJK titles and emoji in
// product names line up.
package runewidth

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/mattn/go-runewidth"
)

// DefaultMaxWidth caps a single column.
const DefaultMaxWidth = 48

const ellipsis = "…"

// Table writes aligned tables.
type Table struct {
	w        io.Writer
	maxWidth int
}

// NewTable creates a Table writing to w. A maxWidth below 4 falls back
// to DefaultMaxWidth.
func NewTable(w io.Writer, maxWidth int) *Table {
	if maxWidth < 4 {
		maxWidth = DefaultMaxWidth
	}
	return &Table{w: w, maxWidth: maxWidth}
}

// WriteRecords writes one table per category, in order of first
// appearance, with the category's fields as columns.
func (t *Table) WriteRecords(records []*pagesift.Record) error {
	var order []pagesift.Category
	groups := make(map[pagesift.Category][]*pagesift.Record)
	for _, r := range records {
		if r == nil {
			continue
		}
		if _, ok := groups[r.Category]; !ok {
			order = append(order, r.Category)
		}
		groups[r.Category] = append(groups[r.Category], r)
	}

	for i, c := range order {
		if i > 0 {
			if _, err := fmt.Fprintln(t.w); err != nil {
				return err
			}
		}
		fields := pagesift.Fields(c)
		header := append([]string{"#"}, fields...)
		rows := make([][]string, 0, len(groups[c]))
		for n, r := range groups[c] {
			row := []string{fmt.Sprint(n + 1)}
			for _, f := range fields {
				row = append(row, r.Get(f))
			}
			rows = append(rows, row)
		}
		if _, err := fmt.Fprintf(t.w, "%s (%d)\n", c, len(rows)); err != nil {
			return err
		}
		if err := t.write(header, rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteRuns writes stored runs, one per line.
func (t *Table) WriteRuns(runs []*pagesift.Run) error {
	header := []string{"id", "created", "category", "records", "url"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			string(r.Category),
			fmt.Sprint(r.RecordCount),
			r.SourceURL,
		})
	}
	return t.write(header, rows)
}

func (t *Table) write(header []string, rows [][]string) error {
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, header)
	for _, row := range rows {
		fitted := make([]string, len(row))
		for i, c := range row {
			fitted[i] = Fit(c, t.maxWidth)
		}
		cells = append(cells, fitted)
	}

	widths := make([]int, len(header))
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	for n, row := range cells {
		if err := t.writeRow(row, widths); err != nil {
			return err
		}
		if n == 0 {
			sep := make([]string, len(widths))
			for i, w := range widths {
				sep[i] = strings.Repeat("-", w)
			}
			if err := t.writeRow(sep, widths); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Table) writeRow(row []string, widths []int) error {
	var sb strings.Builder
	for i, c := range row {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(row)-1 {
			sb.WriteString(c)
			break
		}
		sb.WriteString(runewidth.FillRight(c, widths[i]))
	}
	_, err := io.WriteString(t.w, strings.TrimRight(sb.String(), " ")+"\n")
	return err
}

// Fit flattens s onto one line and truncates it to width display cells.
func Fit(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, ellipsis)
}

// Tail keeps the last display cells of s that fit in width, prefixing an
// ellipsis when anything was dropped. URLs read best from the end.
func Tail(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	budget := width - runewidth.StringWidth(ellipsis)
	runes := []rune(s)
	start := len(runes)
	used := 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:])
}
