// Package dedup provides a bounded membership set over transaction hashes.
package dedup

import "sync"

// Ledger guarantees at-most-one acceptance per transaction hash. It is
// a write-once membership test, not a cache: when the set grows past
// its cap, the oldest-inserted entries are evicted first, regardless of
// how recently they were looked up.
type Ledger struct {
	seen  map[string]struct{}
	order []string
	cap   int
	mu    sync.Mutex
}

// NewLedger creates a ledger holding at most capacity hashes.
func NewLedger(capacity int) *Ledger {
	return &Ledger{
		seen: make(map[string]struct{}, capacity),
		cap:  capacity,
	}
}

// Has reports whether hash was previously added.
func (l *Ledger) Has(hash string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[hash]
	return ok
}

// Add records hash, evicting oldest-inserted entries while over capacity.
func (l *Ledger) Add(hash string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[hash]; ok {
		return
	}
	l.seen[hash] = struct{}{}
	l.order = append(l.order, hash)

	for len(l.seen) > l.cap {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.seen, oldest)
	}
}

// Size returns the number of tracked hashes.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}
