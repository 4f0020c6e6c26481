package batch

import (
	"context"
	"sync"

	"github.com/fwojciec/pagetext"
	"golang.org/x/time/rate"
)

var _ pagetext.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host, so a URL list spread over
// many hosts is not serialized behind the busiest one.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewDomainLimiter allows rps requests per second to each host with no
// bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
	}
}

// Wait blocks until a request to domain is allowed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.bucket(domain).Wait(ctx)
}

func (d *DomainLimiter) bucket(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[domain]
	if !ok {
		b = rate.NewLimiter(d.limit, 1)
		d.buckets[domain] = b
	}
	return b
}
