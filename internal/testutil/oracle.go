package testutil

import (
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// Oracle is a thread-safe reference bitmap of non-negative integers
// used as an independent ground truth: a single mutex around a
// roaring.Bitmap, with no striping or resize protocol of its own to
// get wrong, so a mismatch against the set under test is attributable
// to the set under test.
type Oracle struct {
	mu sync.Mutex
	bm *roaring.Bitmap
}

func NewOracle() *Oracle {
	return &Oracle{bm: roaring.New()}
}

// Add reports whether v was absent before adding it, mirroring the
// Set Contract's Add semantics.
func (o *Oracle) Add(v uint32) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bm.CheckedAdd(v)
}

// Remove reports whether v was present before removing it.
func (o *Oracle) Remove(v uint32) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bm.CheckedRemove(v)
}

func (o *Oracle) Contains(v uint32) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bm.Contains(v)
}

func (o *Oracle) Len() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bm.GetCardinality()
}
