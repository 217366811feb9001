package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/goquery"
	"github.com/fwojciec/pagesift/htmltomarkdown"
	pagesifthttp "github.com/fwojciec/pagesift/http"
	"github.com/fwojciec/pagesift/readability"
	"github.com/fwojciec/pagesift/rod"
	pagesiftslog "github.com/fwojciec/pagesift/slog"
	"github.com/fwojciec/pagesift/sqlite"
	"github.com/fwojciec/pagesift/trafilatura"
	"github.com/fwojciec/pagesift/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the run history.
	DB *sqlite.DB

	// Fetcher replaces the browser or HTTP fetcher when set, for
	// end-to-end testing.
	Fetcher pagesift.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesift"),
		kong.Description("Extract products, articles and page content from rendered HTML"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesift --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(cli.Verbose, stderr)

	// Engine
	tables := pagesift.DefaultTables()
	if cli.Tables != "" {
		if tables, err = yaml.LoadTables(cli.Tables); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", pagesift.ErrorMessage(err))
			return err
		}
	}
	var opts []goquery.Option
	if metadata := newMetadataExtractor(cli.Metadata); metadata != nil {
		opts = append(opts, goquery.WithMetadataExtractor(metadata))
	}
	engine, err := goquery.NewEngine(tables, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	deps.Scraper = pagesiftslog.NewLoggingScraper(engine, deps.Logger)
	deps.Clean = func(html string) (string, string, error) {
		doc := engine.Normalize(html)
		cleaned, err := doc.HTML()
		return doc.Title(), cleaned, err
	}
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Sitemaps = pagesiftslog.NewLoggingSitemapService(pagesifthttp.NewSitemapService(nil), deps.Logger)

	// History database
	if cmd == "history" || cmd == "show" || cmd == "delete" || cli.Scrape.Save || cli.Batch.Save {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAGESIFT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	// Fetcher
	needsFetcher := cmd == "batch" || cmd == "markdown" || (cmd == "scrape" && cli.Scrape.File == "")
	if needsFetcher {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(cli, tables); err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
		}
		deps.Fetcher = pagesiftslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the plain HTTP fetcher for --static and a headless
// browser otherwise.
func newFetcher(cli *CLI, tables *pagesift.Tables) (pagesift.Fetcher, error) {
	if cli.Static {
		return pagesifthttp.NewFetcher(
			pagesifthttp.WithTimeout(cli.Timeout),
			pagesifthttp.WithUserAgents(tables.UserAgents),
		), nil
	}
	return rod.NewFetcher(
		rod.WithFetchTimeout(cli.Timeout),
		rod.WithWait(cli.Wait),
		rod.WithStealth(!cli.NoStealth),
		rod.WithUserAgents(tables.UserAgents),
	)
}

func newMetadataExtractor(name string) pagesift.MetadataExtractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewMetadataExtractor()
	case "readability":
		return readability.NewMetadataExtractor()
	}
	return nil
}

func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("PAGESIFT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagesift.db"
	}
	dir := filepath.Join(home, ".pagesift")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "history.db")
}
