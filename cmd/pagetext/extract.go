package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/batch"
	"github.com/fwojciec/pagetext/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	src, err := c.source(deps)
	if err != nil {
		return err
	}

	if c.Target != "" && c.DB == "" {
		if err := os.MkdirAll(c.Target, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", c.Target, err)
		}
	}

	runner := &batch.Runner{
		Fetcher:     deps.Fetcher,
		Tokenizer:   deps.Tokenizer,
		Store:       deps.Store,
		Options:     c.Options(),
		Concurrency: c.Concurrency,
		RetryDelays: batch.DefaultRetryDelays(),
		RateLimiter: deps.RateLimiter,
		Dedupe:      deps.Dedupe,
		Logger:      deps.Logger,
	}

	progress := func(e batch.ProgressEvent) {
		switch e.Status {
		case batch.StatusSkipped:
			fmt.Fprintf(deps.Stderr, "Warning: File exists. Skipping. (%s)\n", describe(e.Input))
		case batch.StatusDuplicate:
			fmt.Fprintf(deps.Stderr, "Warning: Duplicate URL. Skipping. (%s)\n", describe(e.Input))
		case batch.StatusFailed:
			fmt.Fprintf(deps.Stderr, "Failed: %s (%s)\n", errorText(e.Err), describe(e.Input))
		case batch.StatusSaved:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", e.Completed, e.Total, e.Input.Name)
		}
	}

	result, err := runner.Run(deps.Ctx, src, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d, skipped %d, duplicates %d, failed %d\n",
		result.Saved, result.Skipped, result.Duplicates, result.Failed)
	return nil
}

// source picks the input source: a site's sitemaps, a directory of pages,
// or a file listing URLs.
func (c *ExtractCmd) source(deps *Dependencies) (pagetext.InputSource, error) {
	if c.Sitemap {
		filter, err := pagetext.NewURLFilter(c.Include, c.Exclude)
		if err != nil {
			return nil, err
		}
		return &batch.SitemapSource{
			Sitemaps: deps.Sitemaps,
			BaseURL:  c.Input,
			Filter:   filter,
		}, nil
	}

	if fi, err := os.Stat(c.Input); err == nil && fi.IsDir() {
		return fs.NewDirSource(c.Input), nil
	}
	return fs.NewListSource(c.Input), nil
}

func describe(in pagetext.Input) string {
	if in.Remote() {
		return "URL: " + in.Target
	}
	return "File: " + in.Target
}
