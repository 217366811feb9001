package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesift"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Scraper   pagesift.Scraper
	Fetcher   pagesift.Fetcher
	Sitemaps  pagesift.SitemapService
	Converter pagesift.Converter
	Clean     PageCleaner
	Runs      pagesift.RunService

	// RetryDelays overrides the batch retry backoff. Nil uses the default.
	RetryDelays []time.Duration
}

// PageCleaner normalizes rendered markup, returning the page title and the
// cleaned HTML.
type PageCleaner func(html string) (title, cleaned string, err error)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Tables    string        `type:"path" help:"YAML file overlaying the built-in heuristic tables"`
	Timeout   time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	Wait      time.Duration `default:"2s" help:"Extra render wait after page load"`
	Static    bool          `help:"Fetch with plain HTTP instead of a headless browser"`
	NoStealth bool          `help:"Disable browser anti-detection"`
	Verbose   bool          `short:"v" help:"Log pipeline steps to stderr"`
	Metadata  string        `enum:"trafilatura,readability,none" default:"trafilatura" help:"Fallback article metadata extractor (trafilatura, readability, none)"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape records from one page"`
	Batch    BatchCmd    `cmd:"" help:"Scrape many pages, from arguments or a sitemap"`
	Markdown MarkdownCmd `cmd:"" help:"Print a cleaned page as Markdown"`
	History  HistoryCmd  `cmd:"" help:"List saved runs"`
	Show     ShowCmd     `cmd:"" help:"Print the records of a saved run"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a saved run"`
}

// OutputFlags control how records are written.
type OutputFlags struct {
	Output string `short:"o" type:"path" help:"Write records as JSON to this file instead of stdout"`
	Format string `enum:"json,table" default:"json" help:"Stdout format (json, table)"`
	Dedupe bool   `help:"Drop records repeated across the output"`
	Save   bool   `help:"Save the run to the history database"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string `arg:"" optional:"" help:"Page URL"`
	File     string `short:"f" type:"path" help:"Read markup from a saved file instead of fetching"`
	Category string `short:"c" enum:"auto,product,article,generic" default:"auto" help:"Category hint (auto, product, article, generic)"`
	OutputFlags `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" optional:"" name:"url" help:"Page URLs"`
	Sitemap     string   `short:"s" help:"Discover pages from this site's sitemaps"`
	Include     []string `short:"I" help:"Only sitemap URLs matching this regex (repeatable)"`
	Exclude     []string `short:"X" help:"Skip sitemap URLs matching this regex (repeatable)"`
	Category    string   `short:"c" enum:"auto,product,article,generic" default:"auto" help:"Category hint (auto, product, article, generic)"`
	Concurrency int      `default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain (0 disables)"`
	OutputFlags `embed:""`
}

// MarkdownCmd is the "markdown" subcommand.
type MarkdownCmd struct {
	URL string `arg:"" help:"Page URL"`
	Dir string `short:"d" type:"path" help:"Write the page under this directory instead of stdout"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit    int    `short:"n" default:"20" help:"Maximum runs to list"`
	URL      string `help:"Only runs of this source URL"`
	Category string `help:"Only runs of this category (product, article, generic)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Run ID"`
	Format string `enum:"json,table" default:"json" help:"Output format (json, table)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
