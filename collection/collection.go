package collection

// Collection is an ordered, index-addressable sequence of T. It is the base
// storage shape for every entity arena in the model package: entities never
// hold owning references to each other, only Idx[T] handles into the
// Collection that owns them.
type Collection[T any] struct {
	values []T
}

// New builds a Collection from an existing sequence, taking ownership of it.
func New[T any](values []T) *Collection[T] {
	return &Collection[T]{values: values}
}

// Len returns the number of elements.
func (c *Collection[T]) Len() int {
	return len(c.values)
}

// IsEmpty reports whether the collection has no elements.
func (c *Collection[T]) IsEmpty() bool {
	return len(c.values) == 0
}

// Push appends value and returns the Idx assigned to it.
func (c *Collection[T]) Push(value T) Idx[T] {
	idx := newIdx[T](len(c.values))
	c.values = append(c.values, value)
	return idx
}

// Index returns the element at idx. It panics if idx is out of range, which
// can only happen if idx was produced by a different collection or survived
// a Take/retain that invalidated it.
func (c *Collection[T]) Index(idx Idx[T]) *T {
	return &c.values[idx.i]
}

// Values returns the backing slice for read-only iteration.
func (c *Collection[T]) Values() []T {
	return c.values
}

// ValuesMut returns the backing slice for in-place mutation. Callers must not
// change its length; use Push/Retain for that.
func (c *Collection[T]) ValuesMut() []T {
	return c.values
}

// Pair is one (Idx, value) iteration step.
type Pair[T any] struct {
	Idx   Idx[T]
	Value *T
}

// Iter returns every (Idx, *T) pair in insertion order.
func (c *Collection[T]) Iter() []Pair[T] {
	pairs := make([]Pair[T], len(c.values))
	for i := range c.values {
		pairs[i] = Pair[T]{Idx: newIdx[T](i), Value: &c.values[i]}
	}
	return pairs
}

// IterFrom resolves a sequence of indices against this collection, in the
// order given.
func (c *Collection[T]) IterFrom(idxs []Idx[T]) []*T {
	out := make([]*T, len(idxs))
	for i, idx := range idxs {
		out[i] = &c.values[idx.i]
	}
	return out
}

// Retain keeps only the elements for which pred returns true, preserving
// relative order. It never fails: the predicate produces a subset.
func (c *Collection[T]) Retain(pred func(*T) bool) {
	kept := c.values[:0]
	for i := range c.values {
		if pred(&c.values[i]) {
			kept = append(kept, c.values[i])
		}
	}
	c.values = kept
}

// Take empties the collection and returns its former contents by value. It
// is the basic primitive for "modify then rebuild" (see
// CollectionWithId.Take).
func (c *Collection[T]) Take() []T {
	values := c.values
	c.values = nil
	return values
}

// Merge appends other's elements to c, in order.
func (c *Collection[T]) Merge(other *Collection[T]) {
	c.values = append(c.values, other.values...)
}

// ShrinkToFit releases any spare backing-array capacity. Pure capacity
// hygiene, no observable semantic effect.
func (c *Collection[T]) ShrinkToFit() {
	if cap(c.values) == len(c.values) {
		return
	}
	shrunk := make([]T, len(c.values))
	copy(shrunk, c.values)
	c.values = shrunk
}
