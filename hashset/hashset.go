// Package hashset is the facade over the four synchronization variants:
// a shared Set contract plus one constructor per variant. Callers who
// already know which variant they want may instead import sequential,
// coarse, striped, or refinable directly and skip the interface-return
// indirection, the same pattern golang.org/x/sync/errgroup uses by
// being usable standalone with no facade package of its own.
package hashset

import (
	"github.com/ledgerwatch/hashset/coarse"
	"github.com/ledgerwatch/hashset/internal/bucket"
	"github.com/ledgerwatch/hashset/internal/setlog"
	"github.com/ledgerwatch/hashset/refinable"
	"github.com/ledgerwatch/hashset/sequential"
	"github.com/ledgerwatch/hashset/striped"
)

// Set is the contract shared by all four variants. All four operations
// are linearizable except Size on the striped and refinable variants,
// which is an atomically-loaded snapshot rather than a
// linearization-point read.
type Set[T comparable] interface {
	// Add returns true iff e was absent; on true, e is now present.
	Add(e T) bool
	// Remove returns true iff e was present; on true, e is now absent.
	Remove(e T) bool
	// Contains returns true iff e is currently present.
	Contains(e T) bool
	// Size returns the current element count.
	Size() int64
}

// ErrNonPositiveCapacity is the sentinel fatal-precondition error every
// constructor panics with (wrapped via fmt.Errorf) when given a
// non-positive initial capacity.
var ErrNonPositiveCapacity = bucket.ErrNonPositiveCapacity

// config collects the ambient, non-functional options every concurrent
// constructor accepts. No option here may affect the Set Contract's
// own behavior.
type config struct {
	logger *setlog.Logger
	label  string
}

// Option configures ambient concerns (currently: logging) of a
// constructed Set. It never affects the Set Contract itself.
type Option func(*config)

// WithLogger attaches a structured logger; each completed resize is
// logged at debug level. The default is a no-op logger.
func WithLogger(l *setlog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithLabel tags log lines emitted by this Set with label.
func WithLabel(label string) Option {
	return func(c *config) { c.label = label }
}

func newConfig(opts []Option) *config {
	c := &config{logger: setlog.Nop(), label: "hashset"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSequential constructs the single-threaded baseline. It is not
// safe for concurrent use.
func NewSequential[T comparable](initialCapacity int, hash func(T) uint64) Set[T] {
	return sequential.New[T](initialCapacity, hash)
}

// NewCoarse constructs the coarse-grained variant: one lock serializes
// every operation and resize.
func NewCoarse[T comparable](initialCapacity int, hash func(T) uint64, opts ...Option) Set[T] {
	cfg := newConfig(opts)
	return coarse.New[T](initialCapacity, hash, cfg.logger, cfg.label)
}

// NewStriped constructs the striped variant: a fixed array of stripes,
// invariant across resizes.
func NewStriped[T comparable](initialCapacity int, hash func(T) uint64, opts ...Option) Set[T] {
	cfg := newConfig(opts)
	return striped.New[T](initialCapacity, hash, cfg.logger, cfg.label)
}

// NewRefinable constructs the refinable variant: the stripe array
// itself grows with the table, coordinated via an atomic owner token.
func NewRefinable[T comparable](initialCapacity int, hash func(T) uint64, opts ...Option) Set[T] {
	cfg := newConfig(opts)
	return refinable.New[T](initialCapacity, hash, cfg.logger, cfg.label)
}
