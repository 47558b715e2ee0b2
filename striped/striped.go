// Package striped implements the striped variant: a fixed array of S
// stripes, each guarding the buckets whose index is congruent to the
// stripe's index mod S. S never changes after construction; compare
// refinable, where the stripe array itself grows with the table.
package striped

import (
	"sync"
	stdatomic "sync/atomic"

	"go.uber.org/atomic"

	"github.com/ledgerwatch/hashset/internal/bucket"
	"github.com/ledgerwatch/hashset/internal/setlog"
)

// Set is safe for concurrent use by multiple goroutines.
type Set[T comparable] struct {
	stripes []sync.Mutex // fixed length S = B0, never resized

	table stdatomic.Pointer[bucket.Table[T]]
	n     atomic.Int64

	hash  func(T) uint64
	log   *setlog.Logger
	label string
}

// New constructs a Set whose stripe count equals initialCapacity; the
// stripe count is fixed for the lifetime of the set. logger may be nil.
// It panics if initialCapacity is not positive.
func New[T comparable](initialCapacity int, hash func(T) uint64, logger *setlog.Logger, label string) *Set[T] {
	bucket.CheckCapacity(initialCapacity)
	if logger == nil {
		logger = setlog.Nop()
	}
	s := &Set[T]{
		stripes: make([]sync.Mutex, initialCapacity),
		hash:    hash,
		log:     logger,
		label:   label,
	}
	s.table.Store(bucket.NewTable[T](initialCapacity, hash))
	return s
}

func (s *Set[T]) stripeIndex(e T) int {
	return int(s.hash(e) % uint64(len(s.stripes)))
}

// Add inserts e, returning true iff it was absent.
func (s *Set[T]) Add(e T) bool {
	si := s.stripeIndex(e)
	s.stripes[si].Lock()
	t := s.table.Load()
	bi := t.Index(e)
	var added bool
	if !t.Buckets[bi].Contains(e) {
		t.Buckets[bi].Insert(e)
		added = true
	}
	observedB := len(t.Buckets)
	s.stripes[si].Unlock()

	if !added {
		return false
	}
	newN := s.n.Inc()
	if bucket.LoadFactorExceeded(newN, observedB) {
		s.Resize(observedB)
	}
	return true
}

// Remove deletes e, returning true iff it was present.
func (s *Set[T]) Remove(e T) bool {
	si := s.stripeIndex(e)
	s.stripes[si].Lock()
	defer s.stripes[si].Unlock()

	t := s.table.Load()
	bi := t.Index(e)
	if !t.Buckets[bi].Delete(e) {
		return false
	}
	s.n.Dec()
	return true
}

// Contains reports whether e is currently present.
func (s *Set[T]) Contains(e T) bool {
	si := s.stripeIndex(e)
	s.stripes[si].Lock()
	defer s.stripes[si].Unlock()

	t := s.table.Load()
	bi := t.Index(e)
	return t.Buckets[bi].Contains(e)
}

// Size returns an atomically loaded snapshot of the element count. It
// is intentionally not linearizable: no stripe is acquired to take
// this reading, so the returned value is a recent valid count rather
// than a value tied to a precise linearization point. Acquiring every
// stripe first would make this linearizable at the cost of blocking
// every writer while Size runs.
func (s *Set[T]) Size() int64 { return s.n.Load() }

// Resize grows the table to double observedB, the bucket count the
// caller saw trip the load-factor policy. It acquires every stripe in
// ascending index order, re-checks that the table has not already been
// grown by a racing caller, rehashes, and releases every stripe in
// descending order. Because every single-stripe operation takes at
// most one stripe and Resize always takes all of them in the same
// ascending order, no lock-ordering cycle is possible between Resize
// and ordinary operations.
func (s *Set[T]) Resize(observedB int) {
	for i := range s.stripes {
		s.stripes[i].Lock()
	}

	t := s.table.Load()
	if len(t.Buckets) != observedB {
		// Another goroutine already grew the table; nothing to do.
		for i := len(s.stripes) - 1; i >= 0; i-- {
			s.stripes[i].Unlock()
		}
		return
	}

	newB := observedB * 2
	grown := t.Grown(newB)
	s.table.Store(grown)
	s.log.Debug("resized", "label", s.label, "old_b", observedB, "new_b", newB)

	for i := len(s.stripes) - 1; i >= 0; i-- {
		s.stripes[i].Unlock()
	}
}
