package collection

// CollectionWithId wraps a Collection[T] with an id -> Idx[T] map, for T that
// carry a unique string Identifier. It is the arena shape used for every
// entity kind that adapters and rules reference by string id (Line, Route,
// StopPoint, ...); entities with no natural id (StopTime, Transfer) live in
// a plain Collection instead.
type CollectionWithId[T Identifier] struct {
	collection Collection[T]
	idToIdx    map[string]Idx[T]
}

// NewWithId builds a CollectionWithId from values, failing if any two share
// an ID.
func NewWithId[T Identifier](values []T) (*CollectionWithId[T], error) {
	c := &CollectionWithId[T]{idToIdx: make(map[string]Idx[T], len(values))}
	for _, v := range values {
		if _, err := c.Push(v); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of elements.
func (c *CollectionWithId[T]) Len() int {
	return c.collection.Len()
}

// IsEmpty reports whether the collection has no elements.
func (c *CollectionWithId[T]) IsEmpty() bool {
	return c.collection.IsEmpty()
}

// ContainsID reports whether id is present.
func (c *CollectionWithId[T]) ContainsID(id string) bool {
	_, ok := c.idToIdx[id]
	return ok
}

// GetIdx returns the Idx for id.
func (c *CollectionWithId[T]) GetIdx(id string) (Idx[T], bool) {
	idx, ok := c.idToIdx[id]
	return idx, ok
}

// Get returns the entity with id.
func (c *CollectionWithId[T]) Get(id string) (*T, bool) {
	idx, ok := c.idToIdx[id]
	if !ok {
		return nil, false
	}
	return c.collection.Index(idx), true
}

// Index returns the entity at idx.
func (c *CollectionWithId[T]) Index(idx Idx[T]) *T {
	return c.collection.Index(idx)
}

// Push appends value, failing with a DuplicateIDError if its ID is already
// present. Never observably updates the id map without also appending to the
// backing sequence.
func (c *CollectionWithId[T]) Push(value T) (Idx[T], error) {
	id := value.ID()
	if _, exists := c.idToIdx[id]; exists {
		var zero Idx[T]
		return zero, newDuplicateIDError(id)
	}
	idx := c.collection.Push(value)
	c.idToIdx[id] = idx
	return idx, nil
}

// Iter returns every (Idx, *T) pair in insertion order.
func (c *CollectionWithId[T]) Iter() []Pair[T] {
	return c.collection.Iter()
}

// Values returns the backing slice for read-only iteration.
func (c *CollectionWithId[T]) Values() []T {
	return c.collection.Values()
}

// ValuesMut returns the backing slice for in-place mutation that does not
// rename any ID. Use IndexMut/GetMut for ID-changing mutation.
func (c *CollectionWithId[T]) ValuesMut() []T {
	return c.collection.ValuesMut()
}

// IterFrom resolves a sequence of indices against this collection.
func (c *CollectionWithId[T]) IterFrom(idxs []Idx[T]) []*T {
	return c.collection.IterFrom(idxs)
}

// IndexMut returns a RefMut proxy for the entity at idx. The caller must
// defer its Release to keep the id map consistent if the entity's ID
// changes during the call.
func (c *CollectionWithId[T]) IndexMut(idx Idx[T]) *RefMut[T] {
	v := c.collection.Index(idx)
	return &RefMut[T]{c: c, idx: idx, oldID: (*v).ID(), value: v}
}

// GetMut returns a RefMut proxy for the entity with id, or nil if absent.
func (c *CollectionWithId[T]) GetMut(id string) *RefMut[T] {
	idx, ok := c.idToIdx[id]
	if !ok {
		return nil
	}
	return c.IndexMut(idx)
}

// Retain keeps only the elements for which pred returns true and rebuilds the
// id map. Cannot fail: the predicate produces a subset, so no new collision
// can appear.
func (c *CollectionWithId[T]) Retain(pred func(*T) bool) {
	c.collection.Retain(pred)
	c.rebuildIndex()
}

// KeepWithIDs retains only the entities whose ID is in ids.
func (c *CollectionWithId[T]) KeepWithIDs(ids map[string]struct{}) {
	c.Retain(func(v *T) bool {
		_, ok := ids[(*v).ID()]
		return ok
	})
}

func (c *CollectionWithId[T]) rebuildIndex() {
	c.idToIdx = make(map[string]Idx[T], c.collection.Len())
	for i := range c.collection.values {
		c.idToIdx[c.collection.values[i].ID()] = newIdx[T](i)
	}
}

// IntoVec returns a copy of the backing sequence.
func (c *CollectionWithId[T]) IntoVec() []T {
	out := make([]T, c.collection.Len())
	copy(out, c.collection.Values())
	return out
}

// Take empties the collection (and its id map) and returns its former
// contents by value.
func (c *CollectionWithId[T]) Take() []T {
	values := c.collection.Take()
	c.idToIdx = make(map[string]Idx[T])
	return values
}

// TryMerge appends other's elements, failing on any id collision. On
// failure the elements pushed before the colliding one stay in c; callers
// that need atomicity should operate on a copy.
func (c *CollectionWithId[T]) TryMerge(other *CollectionWithId[T]) error {
	for _, v := range other.Values() {
		if _, err := c.Push(v); err != nil {
			return err
		}
	}
	return nil
}

// Merge appends other's elements, silently dropping any element whose id
// collides with an existing one, and returns how many were dropped. Matches
// the source's best-effort merge semantics.
func (c *CollectionWithId[T]) Merge(other *CollectionWithId[T]) (dropped int) {
	for _, v := range other.Values() {
		if _, err := c.Push(v); err != nil {
			dropped++
		}
	}
	return dropped
}

// Extend is Merge's iterator-shaped sibling: append every value, skipping
// (not failing on) id collisions.
func (c *CollectionWithId[T]) Extend(values []T) (dropped int) {
	for _, v := range values {
		if _, err := c.Push(v); err != nil {
			dropped++
		}
	}
	return dropped
}

// MergeWith appends other's elements; on a colliding incoming value y,
// combine(existing, y) is called exactly once instead of pushing.
func (c *CollectionWithId[T]) MergeWith(values []T, combine func(existing *T, incoming T)) {
	for _, v := range values {
		if idx, exists := c.idToIdx[v.ID()]; exists {
			combine(c.collection.Index(idx), v)
			continue
		}
		_, _ = c.Push(v)
	}
}

// GetOrCreate returns the entity with id, creating and pushing factory(id)
// (with its id then set to id) if absent.
func (c *CollectionWithId[T]) GetOrCreate(id string, factory Factory[T]) Idx[T] {
	if idx, ok := c.idToIdx[id]; ok {
		return idx
	}
	v := factory(id)
	v.SetID(id)
	idx, err := c.Push(v)
	if err != nil {
		// factory just set this exact id and ContainsID(id) was false; a
		// collision here means factory pushed concurrently, which cannot
		// happen in this single-threaded model.
		panic(err)
	}
	return idx
}

// ShrinkToFit releases spare backing-array capacity.
func (c *CollectionWithId[T]) ShrinkToFit() {
	c.collection.ShrinkToFit()
}
