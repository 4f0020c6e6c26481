package batch

import (
	"context"
	"time"

	"github.com/fwojciec/pagetext"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is notified before each retry with the attempt about to run
// (2 for the first retry) and the error that caused it.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds, waiting delays[i]
// before retry i+1, so there are at most len(delays)+1 attempts. Errors
// coded EINVALID or ENOTFOUND are permanent and returned at once.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if permanent(err) || attempt == len(delays) {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func permanent(err error) bool {
	switch pagetext.ErrorCode(err) {
	case pagetext.EINVALID, pagetext.ENOTFOUND:
		return true
	}
	return false
}
