// Package collection implements the typed-index arena substrate that every
// other package in this module is built on: an index-addressable sequence
// (Collection) and an ID-indexed sequence (CollectionWithId), both keyed by
// an opaque, type-distinct handle (Idx).
package collection

import "fmt"

// Idx is an opaque handle to a slot in a Collection[T]. Two Idx values of
// different T are distinct types, so the compiler rejects mixing a
// Idx[StopPoint] where a Idx[Route] is expected. An Idx is only valid
// against the Collection that produced it; using it against another
// collection of the same T is a logic error the type system cannot catch.
type Idx[T any] struct {
	i uint32
}

// Before reports whether idx precedes other in declaration order. Ordering
// matches insertion order, giving deterministic iteration and deterministic
// tie-breaks wherever Idx values are sorted.
func (idx Idx[T]) Before(other Idx[T]) bool {
	return idx.i < other.i
}

// Index returns the zero-based slot number backing idx. Exposed for callers
// that need a stable integer key (bitsets, caches); it is not meaningful
// across different collections.
func (idx Idx[T]) Index() uint32 {
	return idx.i
}

func (idx Idx[T]) String() string {
	return fmt.Sprintf("Idx(%d)", idx.i)
}

func newIdx[T any](i int) Idx[T] {
	return Idx[T]{i: uint32(i)}
}

// FromIndex reconstructs an Idx[T] from a raw slot number. Only the
// relations package uses this, to round-trip handles through its bitmap
// storage; everywhere else an Idx is only ever obtained from Push.
func FromIndex[T any](i uint32) Idx[T] {
	return Idx[T]{i: i}
}
