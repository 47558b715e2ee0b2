// Package coarse implements the coarse-grained variant: a single lock
// M serializes every operation and the resize.
package coarse

import (
	"sync"

	"github.com/ledgerwatch/hashset/internal/bucket"
	"github.com/ledgerwatch/hashset/internal/setlog"
)

// Set is safe for concurrent use by multiple goroutines.
type Set[T comparable] struct {
	mu    sync.Mutex
	table *bucket.Table[T]
	n     int64

	log   *setlog.Logger
	label string
}

// New constructs a Set with the given initial capacity and hash
// function. logger may be nil, in which case logging is a no-op. It
// panics if initialCapacity is not positive.
func New[T comparable](initialCapacity int, hash func(T) uint64, logger *setlog.Logger, label string) *Set[T] {
	bucket.CheckCapacity(initialCapacity)
	if logger == nil {
		logger = setlog.Nop()
	}
	return &Set[T]{
		table: bucket.NewTable[T](initialCapacity, hash),
		log:   logger,
		label: label,
	}
}

// Add inserts e, returning true iff it was absent. If the insert trips
// the load-factor policy, M is released and then re-acquired to
// perform the resize: a racing Add may have grown the table in
// between, so the policy is re-checked under the second critical
// section before rehashing.
func (s *Set[T]) Add(e T) bool {
	s.mu.Lock()
	idx := s.table.Index(e)
	if s.table.Buckets[idx].Contains(e) {
		s.mu.Unlock()
		return false
	}
	s.table.Buckets[idx].Insert(e)
	s.n++
	triggered := bucket.LoadFactorExceeded(s.n, len(s.table.Buckets))
	s.mu.Unlock()

	if triggered {
		s.maybeResize()
	}
	return true
}

func (s *Set[T]) maybeResize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have already resized between our unlock in
	// Add and this re-acquire; without this re-check two racers that
	// both observed the policy firing would both rehash.
	if !bucket.LoadFactorExceeded(s.n, len(s.table.Buckets)) {
		return
	}

	oldB := len(s.table.Buckets)
	s.table = s.table.Grown(oldB * 2)
	s.log.Debug("resized", "label", s.label, "old_b", oldB, "new_b", oldB*2)
}

// Remove deletes e, returning true iff it was present.
func (s *Set[T]) Remove(e T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.table.Index(e)
	if !s.table.Buckets[idx].Delete(e) {
		return false
	}
	s.n--
	return true
}

// Contains reports whether e is currently present.
func (s *Set[T]) Contains(e T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.table.Index(e)
	return s.table.Buckets[idx].Contains(e)
}

// Size returns the current element count. Because the whole set is
// guarded by a single lock, this is a true linearization-point read,
// stronger than the contract the striped and refinable variants give.
func (s *Set[T]) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
