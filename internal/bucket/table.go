package bucket

// Table is an array of buckets addressed by hash(e) mod len(Buckets).
// It carries the hash function so that every variant, and the table
// itself during a rehash, compute bucket/stripe indices the same way.
type Table[T comparable] struct {
	Buckets []Chain[T]
	Hash    func(T) uint64
}

// NewTable allocates an empty table of the given capacity.
func NewTable[T comparable](capacity int, hash func(T) uint64) *Table[T] {
	return &Table[T]{
		Buckets: make([]Chain[T], capacity),
		Hash:    hash,
	}
}

// Index returns the bucket index for e under this table's current size.
func (t *Table[T]) Index(e T) int {
	return int(t.Hash(e) % uint64(len(t.Buckets)))
}

// Grown returns a new table of newCapacity buckets holding every element
// currently in t, rehashed under the new capacity. t is left untouched;
// the caller publishes the returned table in its place.
func (t *Table[T]) Grown(newCapacity int) *Table[T] {
	grown := NewTable[T](newCapacity, t.Hash)
	for i := range t.Buckets {
		t.Buckets[i].ForEach(func(e T) {
			idx := grown.Index(e)
			grown.Buckets[idx].Insert(e)
		})
	}
	return grown
}
