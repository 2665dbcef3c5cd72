package relations

import "github.com/transitmodel/transit-model/collection"

// ManyToMany stores a many-to-many relation between A and B, e.g.
// VehicleJourney<->StopPoint derived from ordered stop-time lists:
// duplicates in the sequence (a journey visiting the same stop twice)
// collapse naturally since IdxSet is a set.
type ManyToMany[A, B any] struct {
	forward  map[collection.Idx[A]]IdxSet[B]
	backward map[collection.Idx[B]]IdxSet[A]
}

// NewManyToMany builds an empty relation to be filled with Add.
func NewManyToMany[A, B any]() *ManyToMany[A, B] {
	return &ManyToMany[A, B]{
		forward:  make(map[collection.Idx[A]]IdxSet[B]),
		backward: make(map[collection.Idx[B]]IdxSet[A]),
	}
}

// Add records one correspondence between a and b.
func (r *ManyToMany[A, B]) Add(a collection.Idx[A], b collection.Idx[B]) {
	fs := r.forward[a]
	fs.Add(b)
	r.forward[a] = fs

	bs := r.backward[b]
	bs.Add(a)
	r.backward[b] = bs
}

// GetFromA returns every B related to a.
func (r *ManyToMany[A, B]) GetFromA(a collection.Idx[A]) IdxSet[B] {
	return r.forward[a]
}

// GetFromB returns every A related to b.
func (r *ManyToMany[A, B]) GetFromB(b collection.Idx[B]) IdxSet[A] {
	return r.backward[b]
}

// Forward applies GetFromA across a whole set of A indices.
func (r *ManyToMany[A, B]) Forward(as IdxSet[A]) IdxSet[B] {
	out := IdxSet[B]{}
	for _, a := range as.ToSlice() {
		out = out.Union(r.GetFromA(a))
	}
	return out
}

// Backward applies GetFromB across a whole set of B indices.
func (r *ManyToMany[A, B]) Backward(bs IdxSet[B]) IdxSet[A] {
	out := IdxSet[A]{}
	for _, b := range bs.ToSlice() {
		out = out.Union(r.GetFromB(b))
	}
	return out
}
