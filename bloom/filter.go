// Package bloom detects repeated URLs in a batch using a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is used when a batch asks for de-duplication
// without tuning the filter.
const DefaultFalsePositiveRate = 0.001

// Filter remembers URLs in constant memory. It is safe for concurrent use.
// A false positive makes a new URL look repeated, so size n generously.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Seen records url and reports whether it was (probably) recorded before.
func (f *Filter) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(url)
}

// Test reports whether url might have been recorded, without recording it.
func (f *Filter) Test(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of distinct URLs recorded.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
