package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Tokenizer   pagetext.Tokenizer
	Fetcher     pagetext.Fetcher
	Sitemaps    pagetext.SitemapService
	RateLimiter pagetext.DomainLimiter
	Dedupe      batch.Deduper
	Store       pagetext.RecordStore
	Records     pagetext.RecordFinder
	Index       pagetext.RecordIndex
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch and save to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract records for a directory of pages, a URL list or a site"`
	Dump    DumpCmd    `cmd:"" help:"Print the record of a single file or URL"`
	Show    ShowCmd    `cmd:"" help:"Print a stored record"`
	List    ListCmd    `cmd:"" help:"List records stored in a database"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a record from a database"`
}

// ExtractFlags select what goes into a record and how pages are parsed.
type ExtractFlags struct {
	NoURL     bool   `name:"no-url" help:"Leave the URL and baseURL fields out"`
	NoHeading bool   `name:"no-heading" help:"Do not emit the page title as a heading"`
	RawImg    bool   `name:"raw-img" help:"Keep images as <IMG:src> placeholders"`
	Parser    string `enum:"stream,dom" default:"stream" help:"HTML parser (stream or dom)"`
}

// Options maps the flags onto extractor options.
func (f ExtractFlags) Options() pagetext.Options {
	return pagetext.Options{
		ExtractURL:         !f.NoURL,
		ExtractPageHeading: !f.NoHeading,
		ExtractTextOfImg:   !f.RawImg,
	}
}

// FetchFlags configure how remote pages are retrieved.
type FetchFlags struct {
	Render      bool          `help:"Render pages in headless Chrome before extracting"`
	RenderDelay time.Duration `help:"Extra wait after the load event with --render"`
	MaxPages    int64         `default:"75" help:"Pages rendered before Chrome is restarted with --render"`
	Timeout     time.Duration `short:"t" default:"10s" env:"PAGETEXT_TIMEOUT" help:"Fetch timeout per page"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Input  string `arg:"" help:"Directory of .html files, file of URLs, or a site URL with --sitemap"`
	Target string `arg:"" optional:"" help:"Directory the records are written to"`

	ExtractFlags `embed:""`
	FetchFlags   `embed:""`

	DB          string   `env:"PAGETEXT_DB" help:"Store records in this SQLite database instead of files"`
	Concurrency int      `short:"c" default:"10" env:"PAGETEXT_CONCURRENCY" help:"Pages processed at once"`
	Rate        float64  `default:"0" help:"Requests per second per host (0 for no limit)"`
	Sitemap     bool     `help:"Treat the input as a site URL and read its sitemaps"`
	Include     []string `short:"I" help:"Only sitemap URLs matching this regex (repeatable)"`
	Exclude     []string `short:"E" help:"Skip sitemap URLs matching this regex (repeatable)"`
	Dedupe      bool     `help:"Skip URLs already seen in this run"`
}

// DumpCmd is the "dump" subcommand.
type DumpCmd struct {
	Input string `arg:"" help:"HTML file or URL"`

	ExtractFlags `embed:""`
	FetchFlags   `embed:""`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name string `arg:"" help:"Record name (e.g. 3.json)"`
	DB   string `env:"PAGETEXT_DB" help:"Read from this SQLite database"`
	Dir  string `default:"." help:"Read from this directory when no database is given"`
	Text bool   `help:"Print the heading and content instead of JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	DB     string `env:"PAGETEXT_DB" help:"SQLite database"`
	Limit  int    `short:"n" help:"Maximum number of records"`
	Offset int    `help:"Number of records to skip"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Record name"`
	DB    string `env:"PAGETEXT_DB" help:"SQLite database"`
	Force bool   `help:"Confirm deletion"`
}
