package collection

// Identifier is implemented by every entity stored in a CollectionWithId. The
// ID is the stable string key adapters use to cross-reference entities (a
// GTFS stop_id, a NeTEx ScheduledStopPoint ref, ...); it is independent of
// the Idx handle, which only ever identifies a slot within one collection.
type Identifier interface {
	ID() string
	SetID(string)
}

// Factory builds a zero-value entity seeded with id, used by
// CollectionWithId.GetOrCreate to auto-create referenced-but-missing owning
// entities (see modelbuilder).
type Factory[T any] func(id string) T
