// Package relations implements the generic relational engine: one-to-many
// and many-to-many indices between entity kinds, and a shortest-weighted-
// path "corresponding indices" traversal over a small static graph of kinds.
// It has no knowledge of any concrete entity type; model wires it to the
// transit entities.
package relations

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/transitmodel/transit-model/collection"
)

// IdxSet is a set of Idx[T], backed by a compressed bitmap so that large
// sparse many-to-many relations (e.g. every StopPoint reachable from a
// Network) stay cheap to build, union and iterate in sorted order.
type IdxSet[T any] struct {
	bitmap *roaring.Bitmap
}

// NewIdxSet builds an IdxSet from a list of handles.
func NewIdxSet[T any](idxs ...collection.Idx[T]) IdxSet[T] {
	s := IdxSet[T]{bitmap: roaring.New()}
	for _, idx := range idxs {
		s.bitmap.Add(idx.Index())
	}
	return s
}

func fromBitmap[T any](b *roaring.Bitmap) IdxSet[T] {
	return IdxSet[T]{bitmap: b}
}

// FromRaw wraps a raw bitmap as an IdxSet[T]. Exported for callers (model's
// Graph-edge wiring) that need to adapt a typed Closure into the Graph's
// type-erased representation.
func FromRaw[T any](b *roaring.Bitmap) IdxSet[T] {
	return fromBitmap[T](b)
}

// Raw exposes the backing bitmap for the Graph, which operates on kinds
// type-erased to their raw bitmap representation.
func (s IdxSet[T]) Raw() *roaring.Bitmap {
	if s.bitmap == nil {
		return roaring.New()
	}
	return s.bitmap
}

// Add inserts idx into the set.
func (s *IdxSet[T]) Add(idx collection.Idx[T]) {
	if s.bitmap == nil {
		s.bitmap = roaring.New()
	}
	s.bitmap.Add(idx.Index())
}

// Contains reports whether idx is in the set.
func (s IdxSet[T]) Contains(idx collection.Idx[T]) bool {
	return s.bitmap != nil && s.bitmap.Contains(idx.Index())
}

// Len returns the number of elements.
func (s IdxSet[T]) Len() int {
	if s.bitmap == nil {
		return 0
	}
	return int(s.bitmap.GetCardinality())
}

// IsEmpty reports whether the set has no elements.
func (s IdxSet[T]) IsEmpty() bool { return s.Len() == 0 }

// Union returns the union of s and other as a new set.
func (s IdxSet[T]) Union(other IdxSet[T]) IdxSet[T] {
	out := roaring.New()
	if s.bitmap != nil {
		out.Or(s.bitmap)
	}
	if other.bitmap != nil {
		out.Or(other.bitmap)
	}
	return IdxSet[T]{bitmap: out}
}

// ToSlice returns every handle in the set in ascending (insertion-order)
// sequence, since roaring always iterates its bitmap in increasing order —
// this is what gives get_corresponding's output its deterministic ordering.
func (s IdxSet[T]) ToSlice() []collection.Idx[T] {
	if s.bitmap == nil {
		return nil
	}
	raw := s.bitmap.ToArray()
	out := make([]collection.Idx[T], len(raw))
	for i, v := range raw {
		out[i] = collection.FromIndex[T](v)
	}
	return out
}
