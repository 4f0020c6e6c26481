package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/batch"
	"github.com/fwojciec/pagetext/bloom"
	"github.com/fwojciec/pagetext/fs"
	"github.com/fwojciec/pagetext/goquery"
	"github.com/fwojciec/pagetext/html"
	pthttp "github.com/fwojciec/pagetext/http"
	"github.com/fwojciec/pagetext/rod"
	ptslog "github.com/fwojciec/pagetext/slog"
	"github.com/fwojciec/pagetext/sqlite"
)

// dedupeCapacity sizes the Bloom filter behind --dedupe.
const dedupeCapacity = 1 << 20

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorText(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database opened for --db. Set by Run.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil fields are built from flags.
	Fetcher  pagetext.Fetcher
	Sitemaps pagetext.SitemapService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("pagetext"),
		kong.Description("Extract flat, offset-annotated text records from HTML pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return pagetext.Errorf(pagetext.EINVALID, "no command specified. Run 'pagetext --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "extract":
		c := &cli.Extract
		deps.Tokenizer = newTokenizer(c.Parser)
		if err := m.wireFetcher(deps, c.FetchFlags); err != nil {
			return err
		}
		defer deps.Fetcher.Close()

		sitemaps := m.Sitemaps
		if sitemaps == nil {
			sitemaps = pthttp.NewSitemapService(nil)
		}
		deps.Sitemaps = ptslog.NewLoggingSitemapService(sitemaps, deps.Logger)
		deps.RateLimiter = batch.NewDomainLimiter(c.Rate)
		if c.Dedupe {
			deps.Dedupe = bloom.NewFilter(dedupeCapacity, bloom.DefaultFalsePositiveRate)
		}

		var store pagetext.RecordStore
		if c.DB != "" {
			if err := m.openDB(c.DB, stderr); err != nil {
				return err
			}
			defer m.Close()
			store = sqlite.NewRecordService(m.DB)
		} else {
			if c.Target == "" {
				return pagetext.Errorf(pagetext.EINVALID, "target directory required when --db is not set")
			}
			store = fs.NewRecordStore(c.Target)
		}
		deps.Store = ptslog.NewLoggingRecordStore(store, deps.Logger)

	case "dump":
		c := &cli.Dump
		deps.Tokenizer = newTokenizer(c.Parser)
		if err := m.wireFetcher(deps, c.FetchFlags); err != nil {
			return err
		}
		defer deps.Fetcher.Close()

	case "show":
		if cli.Show.DB == "" {
			deps.Records = fs.NewRecordStore(cli.Show.Dir)
			break
		}
		if err := m.openDB(cli.Show.DB, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Records = sqlite.NewRecordService(m.DB)

	case "list", "delete":
		path := cli.List.DB
		if cmd == "delete" {
			path = cli.Delete.DB
		}
		if path == "" {
			return pagetext.Errorf(pagetext.EINVALID, "database path required (--db or PAGETEXT_DB)")
		}
		if err := m.openDB(path, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Index = sqlite.NewRecordService(m.DB)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set PAGETEXT_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// wireFetcher picks the HTTP or browser fetcher and wraps it with logging.
func (m *Main) wireFetcher(deps *Dependencies, flags FetchFlags) error {
	timeout := flags.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	fetcher := m.Fetcher
	switch {
	case fetcher != nil:
	case flags.Render:
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(timeout),
			rod.WithRenderDelay(flags.RenderDelay),
			rod.WithBrowserOptions(rod.WithMaxPages(flags.MaxPages)),
		)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	default:
		fetcher = pthttp.NewFetcher(pthttp.WithTimeout(timeout))
	}

	deps.Fetcher = ptslog.NewLoggingFetcher(fetcher, deps.Logger)
	return nil
}

func newTokenizer(parser string) pagetext.Tokenizer {
	if parser == "dom" {
		return goquery.NewWalker()
	}
	return html.NewTokenizer()
}

// errorText is the message printed for err: the message of an application
// error, or the full chain otherwise.
func errorText(err error) string {
	var e *pagetext.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
