package relations

import "github.com/transitmodel/transit-model/collection"

// OneToMany stores a one-to-many relation between A (e.g. a Network) and B
// (e.g. its Lines), derived once from a foreign-key field on B. Grounded on
// the source's relations.rs OneToMany.
type OneToMany[A, B any] struct {
	forward  map[collection.Idx[A]]IdxSet[B]
	backward map[collection.Idx[B]]collection.Idx[A]
}

// BuildOneToMany derives a relation from every B, given a function that
// resolves B's owning A index (or ok=false if B has none, e.g. an optional
// foreign key left unset).
func BuildOneToMany[A, B any](bs []collection.Idx[B], ownerOf func(collection.Idx[B]) (collection.Idx[A], bool)) *OneToMany[A, B] {
	r := &OneToMany[A, B]{
		forward:  make(map[collection.Idx[A]]IdxSet[B]),
		backward: make(map[collection.Idx[B]]collection.Idx[A]),
	}
	for _, b := range bs {
		a, ok := ownerOf(b)
		if !ok {
			continue
		}
		set := r.forward[a]
		set.Add(b)
		r.forward[a] = set
		r.backward[b] = a
	}
	return r
}

// GetFromA returns every B related to a.
func (r *OneToMany[A, B]) GetFromA(a collection.Idx[A]) IdxSet[B] {
	return r.forward[a]
}

// GetFromB returns the A that owns b, if any.
func (r *OneToMany[A, B]) GetFromB(b collection.Idx[B]) (collection.Idx[A], bool) {
	a, ok := r.backward[b]
	return a, ok
}

// Forward applies GetFromA across a whole set of A indices.
func (r *OneToMany[A, B]) Forward(as IdxSet[A]) IdxSet[B] {
	out := IdxSet[B]{}
	for _, a := range as.ToSlice() {
		out = out.Union(r.GetFromA(a))
	}
	return out
}

// Backward applies GetFromB across a whole set of B indices.
func (r *OneToMany[A, B]) Backward(bs IdxSet[B]) IdxSet[A] {
	out := IdxSet[A]{}
	for _, b := range bs.ToSlice() {
		if a, ok := r.GetFromB(b); ok {
			out.Add(a)
		}
	}
	return out
}
