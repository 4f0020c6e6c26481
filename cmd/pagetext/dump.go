package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagetext"
)

// Run executes the dump command.
func (c *DumpCmd) Run(deps *Dependencies) error {
	var (
		body   io.Reader
		target string
	)

	if u, err := url.Parse(c.Input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		html, err := deps.Fetcher.Fetch(deps.Ctx, c.Input)
		if err != nil {
			return err
		}
		body, target = strings.NewReader(html), c.Input
	} else {
		f, err := os.Open(c.Input)
		if os.IsNotExist(err) {
			return pagetext.Errorf(pagetext.ENOTFOUND, "file not found: %s", c.Input)
		} else if err != nil {
			return err
		}
		defer f.Close()
		body, target = f, filepath.Base(c.Input)
	}

	rec, err := pagetext.Extract(body, deps.Tokenizer, c.Options(), target)
	if err != nil {
		return err
	}

	data, err := pagetext.MarshalRecord(rec)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s\n", data)
	return nil
}
