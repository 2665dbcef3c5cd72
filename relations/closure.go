package relations

import "github.com/transitmodel/transit-model/collection"

// Closure is a set-to-set traversal step from kind A to kind B. OneToMany
// and ManyToMany each expose their Forward/Backward methods as a Closure;
// shortcut relations are built by composing two existing closures.
type Closure[A, B any] func(IdxSet[A]) IdxSet[B]

// Chain composes ab then bc into a single A->C closure. Both of the
// source's shortcut-composition strategies ("chain": A->B then B->C;
// "sink": A->B then, reversing a C->B relation, B->C) reduce to the same
// function composition — the difference is only which direction (Forward
// or Backward) of the underlying relation the caller passes in.
func Chain[A, B, C any](ab Closure[A, B], bc Closure[B, C]) Closure[A, C] {
	return func(s IdxSet[A]) IdxSet[C] {
		return bc(ab(s))
	}
}

// Materialize runs closure over every element of every A individually and
// records the correspondences as a ManyToMany, used to precompute shortcut
// relations once at Graph-build time rather than recomputing the
// composition on every query.
func Materialize[A, B any](as []collection.Idx[A], closure Closure[A, B]) *ManyToMany[A, B] {
	out := NewManyToMany[A, B]()
	for _, a := range as {
		for _, b := range closure(NewIdxSet(a)).ToSlice() {
			out.Add(a, b)
		}
	}
	return out
}
