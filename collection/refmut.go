package collection

// RefMut is a scoped mutation proxy for an entity inside a CollectionWithId.
// It remembers the entity's ID at acquisition time; Release rewrites the id
// map if the ID changed while the proxy was held. Callers must defer
// Release() immediately after acquiring a RefMut, mirroring the source's
// drop-based guarantee that the (map, sequence) pair is never observably
// inconsistent:
//
//	ref := routes.IndexMut(idx)
//	defer ref.Release()
//	ref.Value().Name = "new name"
type RefMut[T Identifier] struct {
	c     *CollectionWithId[T]
	idx   Idx[T]
	oldID string
	value *T
}

// Value returns the mutable entity. Any field, including the ID, may be
// changed; Release reconciles the id map afterwards.
func (r *RefMut[T]) Value() *T {
	return r.value
}

// Release reconciles the id map with the entity's current ID. If the ID is
// unchanged this is a no-op. If it changed to an ID not already present, the
// map entry is moved. If it changed to an ID that already exists, this is an
// invariant violation: the container would become ambiguous, so Release
// panics (the Go analogue of the source's process abort) carrying the
// colliding ID, rather than silently corrupting the id map.
func (r *RefMut[T]) Release() {
	newID := (*r.value).ID()
	if newID == r.oldID {
		return
	}
	if _, exists := r.c.idToIdx[newID]; exists {
		panic(&DuplicateIDError{ID: newID})
	}
	delete(r.c.idToIdx, r.oldID)
	r.c.idToIdx[newID] = r.idx
}
