package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesift"
)

// Ensure LoggingScraper implements pagesift.Scraper.
var _ pagesift.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper and logs the category chosen for each
// page and how many records came out of it.
type LoggingScraper struct {
	next   pagesift.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next pagesift.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper. An empty result is logged as a
// warning since it usually means the heuristics found nothing to anchor on.
func (s *LoggingScraper) Scrape(html, sourceURL string, hint pagesift.Category) (result *pagesift.Result, err error) {
	defer func(begin time.Time) {
		var category pagesift.Category
		var records int
		if result != nil {
			category = result.Category
			records = len(result.Records)
		}
		level := slog.LevelInfo
		if err == nil && records == 0 {
			level = slog.LevelWarn
		}
		s.logger.Log(context.Background(), level, "scrape",
			"url", sourceURL,
			"hint", hint,
			"category", category,
			"records", records,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(html, sourceURL, hint)
}
