// Package refinable implements the refinable variant: like striped,
// but the stripe array itself is replaced on every resize so that the
// number of stripes grows in lockstep with the bucket count.
// Coordination between a single-stripe operation and a resizer that
// might replace the stripe array out from under it is handled by an
// owner token plus an optimistic acquire-then-validate retry.
package refinable

import (
	"runtime"
	"sync"
	stdatomic "sync/atomic"

	"go.uber.org/atomic"

	"github.com/ledgerwatch/hashset/internal/bucket"
	"github.com/ledgerwatch/hashset/internal/setlog"
)

// ownerToken marks an in-progress resize. A nil *ownerToken means
// "no owner"; a non-nil one names the goroutine currently resizing.
// ownerID only serves observability (it is logged); the acquire spin
// loop only cares whether the token is nil, since acquire is never
// called by the goroutine currently running Resize.
type ownerToken struct {
	ownerID uint64
}

// stripeArray is the current generation of stripe locks. The Set holds
// only the current generation; an older one stays reachable as long as
// an in-flight acquire() still holds its snapshot as a normal Go
// pointer, and the garbage collector, not manual reclamation, frees it
// once the last such reference drops.
type stripeArray struct {
	locks []sync.Mutex
}

// Set is safe for concurrent use by multiple goroutines.
type Set[T comparable] struct {
	table   stdatomic.Pointer[bucket.Table[T]]
	stripes stdatomic.Pointer[stripeArray]
	owner   stdatomic.Pointer[ownerToken]

	n           atomic.Int64
	nextOwnerID atomic.Uint64

	hash  func(T) uint64
	log   *setlog.Logger
	label string
}

// New constructs a Set whose stripe array starts at initialCapacity
// stripes and grows alongside the bucket array on every resize. logger
// may be nil. It panics if initialCapacity is not positive.
func New[T comparable](initialCapacity int, hash func(T) uint64, logger *setlog.Logger, label string) *Set[T] {
	bucket.CheckCapacity(initialCapacity)
	if logger == nil {
		logger = setlog.Nop()
	}
	s := &Set[T]{hash: hash, log: logger, label: label}
	s.table.Store(bucket.NewTable[T](initialCapacity, hash))
	s.stripes.Store(&stripeArray{locks: make([]sync.Mutex, initialCapacity)})
	return s
}

// heldStripe is the receipt from a validated acquire(): which stripe
// array generation the lock belongs to, and which index in it.
type heldStripe struct {
	arr *stripeArray
	idx int
}

func (h heldStripe) release() {
	h.arr.locks[h.idx].Unlock()
}

// acquire implements an optimistic acquire-with-validation loop: lock
// first, validate second, retry on failure. Once it returns, the
// caller holds the lock on the stripe that currently governs e, and no
// resizer can be mid-quiesce past that stripe.
func (s *Set[T]) acquire(e T) heldStripe {
	for {
		for s.owner.Load() != nil {
			// A resize is in progress (or about to publish). Yield
			// rather than busy-spin tightly.
			runtime.Gosched()
		}

		arr := s.stripes.Load()
		idx := int(s.hash(e) % uint64(len(arr.locks)))
		arr.locks[idx].Lock()

		if s.owner.Load() != nil || s.stripes.Load() != arr {
			// A resize started (or the stripe array was already
			// replaced) between our snapshot and our lock; this stripe
			// may no longer mean anything. Release and retry.
			arr.locks[idx].Unlock()
			continue
		}

		return heldStripe{arr: arr, idx: idx}
	}
}

// Add inserts e, returning true iff it was absent.
func (s *Set[T]) Add(e T) bool {
	h := s.acquire(e)
	t := s.table.Load()
	bi := t.Index(e)
	var added bool
	if !t.Buckets[bi].Contains(e) {
		t.Buckets[bi].Insert(e)
		added = true
	}
	observedB := len(t.Buckets)
	h.release()

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
	h := s.acquire(e)
	defer h.release()

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
	h := s.acquire(e)
	defer h.release()

	t := s.table.Load()
	bi := t.Index(e)
	return t.Buckets[bi].Contains(e)
}

// Size returns an atomically loaded snapshot of the element count,
// taken without acquiring any stripe: the same intentionally weak
// contract as the striped variant.
func (s *Set[T]) Size() int64 { return s.n.Load() }

// Resize grows the table and the stripe array to double observedB, the
// bucket count the caller saw trip the load-factor policy:
//
//  1. compute old/new capacity from observedB
//  2. CAS the owner token from nil to a fresh token; on failure,
//     another goroutine owns (or will complete) the resize, so return
//  3. re-check the table has not already been grown
//  4. quiesce: lock and immediately unlock every stripe in the current
//     array, in index order, waiting out any in-flight single-stripe
//     holder; any acquire() that starts from here on spins on the
//     marked owner token
//  5. publish a fresh, larger stripe array
//  6. rehash into a fresh, larger bucket array and publish it
//  7. clear the owner token
func (s *Set[T]) Resize(observedB int) {
	tok := &ownerToken{ownerID: s.nextOwnerID.Inc()}
	if !s.owner.CompareAndSwap(nil, tok) {
		return
	}

	t := s.table.Load()
	if len(t.Buckets) != observedB {
		s.owner.Store(nil)
		return
	}

	arr := s.stripes.Load()
	for i := range arr.locks {
		arr.locks[i].Lock()
		arr.locks[i].Unlock()
	}

	newB := observedB * 2
	newArr := &stripeArray{locks: make([]sync.Mutex, newB)}
	s.stripes.Store(newArr)

	grown := t.Grown(newB)
	s.table.Store(grown)
	s.log.Debug("resized", "label", s.label, "old_b", observedB, "new_b", newB, "owner", tok.ownerID)

	s.owner.Store(nil)
}
