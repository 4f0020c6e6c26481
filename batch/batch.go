// Package batch extracts records for many pages at once: every page of an
// input source is read or fetched, extracted and saved, with bounded
// concurrency and per-item failure isolation.
package batch

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/pagetext"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once when
// Runner.Concurrency is not set.
const DefaultConcurrency = 10

// Deduper reports repeated URLs.
type Deduper interface {
	// Seen records url and reports whether it was recorded before.
	Seen(url string) bool
}

// Runner processes every input of a source into the record store.
type Runner struct {
	Fetcher     pagetext.Fetcher
	Tokenizer   pagetext.Tokenizer
	Store       pagetext.RecordStore
	Options     pagetext.Options
	Concurrency int
	RetryDelays []time.Duration

	// Optional.
	RateLimiter pagetext.DomainLimiter
	Dedupe      Deduper
	Logger      *slog.Logger
}

// Status is the outcome of a single input.
type Status int

const (
	StatusSaved Status = iota
	StatusSkipped
	StatusDuplicate
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusSkipped:
		return "skipped"
	case StatusDuplicate:
		return "duplicate"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// ProgressEvent reports the outcome of one input.
type ProgressEvent struct {
	Status    Status
	Input     pagetext.Input
	Err       error
	Completed int
	Total     int
}

// ProgressFunc receives progress events. Events are delivered from a single
// goroutine, one per input.
type ProgressFunc func(event ProgressEvent)

// Result counts the outcomes of a run.
type Result struct {
	Saved      int
	Skipped    int
	Duplicates int
	Failed     int
}

type outcome struct {
	input  pagetext.Input
	status Status
	err    error
}

// Run processes every input of src. Inputs whose output name already exists
// in the store are skipped, and so are repeated URLs when Dedupe is set.
// Skips are decided up front in input order, before any page is fetched.
//
// A failing input is reported through progress and does not stop the run.
// Run returns an error only when src cannot be listed or ctx is canceled.
func (r *Runner) Run(ctx context.Context, src pagetext.InputSource, progress ProgressFunc) (*Result, error) {
	inputs, err := src.Inputs(ctx)
	if err != nil {
		return nil, err
	}

	var (
		result    Result
		completed int
		total     = len(inputs)
	)
	report := func(o outcome) {
		completed++
		switch o.status {
		case StatusSaved:
			result.Saved++
		case StatusSkipped:
			result.Skipped++
		case StatusDuplicate:
			result.Duplicates++
		case StatusFailed:
			result.Failed++
		}
		if progress != nil {
			progress(ProgressEvent{
				Status:    o.status,
				Input:     o.input,
				Err:       o.err,
				Completed: completed,
				Total:     total,
			})
		}
	}

	var pending []pagetext.Input
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return &result, err
		}
		if o, done := r.precheck(ctx, in); done {
			report(o)
			continue
		}
		pending = append(pending, in)
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make(chan outcome, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, in := range pending {
			g.Go(func() error {
				o := outcome{input: in, status: StatusSaved}
				if err := r.process(gctx, in); err != nil {
					o.status, o.err = StatusFailed, err
				}
				outcomes <- o
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	for o := range outcomes {
		report(o)
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// precheck decides whether in can be settled without processing it.
func (r *Runner) precheck(ctx context.Context, in pagetext.Input) (outcome, bool) {
	if r.Dedupe != nil && in.Remote() && r.Dedupe.Seen(in.Target) {
		return outcome{input: in, status: StatusDuplicate}, true
	}

	exists, err := r.Store.Exists(ctx, in.Name)
	if err != nil {
		return outcome{input: in, status: StatusFailed, err: err}, true
	}
	if exists {
		return outcome{input: in, status: StatusSkipped}, true
	}
	return outcome{}, false
}

// process reads or fetches one page, extracts it and saves the record.
func (r *Runner) process(ctx context.Context, in pagetext.Input) error {
	var body io.Reader
	if in.Remote() {
		html, err := r.fetch(ctx, in.Target)
		if err != nil {
			return err
		}
		body = strings.NewReader(html)
	} else {
		f, err := os.Open(in.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		body = f
	}

	rec, err := pagetext.Extract(body, r.Tokenizer, r.Options, in.Target)
	if err != nil {
		return err
	}
	return r.Store.Save(ctx, in.Name, rec)
}

func (r *Runner) fetch(ctx context.Context, target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "", pagetext.Errorf(pagetext.EINVALID, "invalid URL %q", target)
	}

	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, target, r.Fetcher.Fetch, r.logRetry, delays)
}

func (r *Runner) logRetry(url string, attempt int, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.Warn("retrying fetch", "url", url, "attempt", attempt, "err", err)
}
