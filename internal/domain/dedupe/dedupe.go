// Package dedupe tracks which matchups were already seen on a page.
package dedupe

import (
	"context"
	"sync"
)

// keySeparator cannot appear in text extracted from HTML.
const keySeparator = "\x00"

// Deduper records seen keys so that only the first occurrence is kept.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool
}

// PairKey builds an order-independent key for two fighter names, so that
// "A vs B" and "B vs A" collide.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + keySeparator + b
}

// inMemoryDeduper is an unbounded map-backed Deduper. One instance lives for
// the extraction of a single page.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty in-memory deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}
