package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionPushIter(t *testing.T) {
	c := New([]int{})
	idx0 := c.Push(10)
	idx1 := c.Push(20)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 10, *c.Index(idx0))
	assert.Equal(t, 20, *c.Index(idx1))
	assert.True(t, idx0.Before(idx1))

	pairs := c.Iter()
	require.Len(t, pairs, 2)
	assert.Equal(t, idx0, pairs[0].Idx)
}

func TestCollectionRetainPreservesOrder(t *testing.T) {
	c := New([]int{1, 2, 3, 4, 5})
	c.Retain(func(v *int) bool { return *v%2 == 0 })
	assert.Equal(t, []int{2, 4}, c.Values())
}

func TestCollectionTakeEmpties(t *testing.T) {
	c := New([]int{1, 2, 3})
	out := c.Take()
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.True(t, c.IsEmpty())
}

func TestCollectionMergeAppends(t *testing.T) {
	a := New([]int{1, 2})
	b := New([]int{3, 4})
	a.Merge(b)
	assert.Equal(t, []int{1, 2, 3, 4}, a.Values())
}

type namedThing struct {
	IDField string
	Value   int
}

func (n namedThing) ID() string       { return n.IDField }
func (n *namedThing) SetID(id string) { n.IDField = id }

func TestCollectionWithIdPushAndGet(t *testing.T) {
	c, err := NewWithId([]namedThing{{IDField: "a", Value: 1}})
	require.NoError(t, err)

	idx, err := c.Push(namedThing{IDField: "b", Value: 2})
	require.NoError(t, err)

	got, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, got.Value)

	gotIdx, ok := c.GetIdx("b")
	require.True(t, ok)
	assert.Equal(t, idx, gotIdx)
}

func TestCollectionWithIdRejectsDuplicateID(t *testing.T) {
	c, err := NewWithId([]namedThing{{IDField: "a"}})
	require.NoError(t, err)

	_, err = c.Push(namedThing{IDField: "a"})
	require.Error(t, err)
	assert.True(t, IsDuplicateID(err, "a"))
}

func TestCollectionWithIdUniversalInvariant(t *testing.T) {
	// For every id in C, C.get(C.get(id).id()) == C.get(id).
	c, err := NewWithId([]namedThing{{IDField: "a", Value: 1}, {IDField: "b", Value: 2}})
	require.NoError(t, err)

	for _, id := range []string{"a", "b"} {
		first, ok := c.Get(id)
		require.True(t, ok)
		second, ok := c.Get(first.ID())
		require.True(t, ok)
		assert.Equal(t, *first, *second)
	}
}

func TestCollectionWithIdPushThenGetIdxMatches(t *testing.T) {
	c, err := NewWithId([]namedThing{})
	require.NoError(t, err)

	idx, err := c.Push(namedThing{IDField: "x", Value: 42})
	require.NoError(t, err)

	gotIdx, ok := c.GetIdx("x")
	require.True(t, ok)
	assert.Equal(t, idx, gotIdx)
}

func TestRefMutRenamesID(t *testing.T) {
	c, err := NewWithId([]namedThing{{IDField: "a", Value: 1}})
	require.NoError(t, err)

	func() {
		ref := c.GetMut("a")
		require.NotNil(t, ref)
		defer ref.Release()
		ref.Value().IDField = "b"
	}()

	_, ok := c.Get("a")
	assert.False(t, ok)
	got, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 1, got.Value)

	// Renaming back restores the original state.
	func() {
		ref := c.GetMut("b")
		require.NotNil(t, ref)
		defer ref.Release()
		ref.Value().IDField = "a"
	}()
	got, ok = c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got.Value)
}

func TestRefMutPanicsOnCollision(t *testing.T) {
	c, err := NewWithId([]namedThing{{IDField: "a"}, {IDField: "b"}})
	require.NoError(t, err)

	assert.Panics(t, func() {
		ref := c.GetMut("a")
		defer ref.Release()
		ref.Value().IDField = "b"
	})
}

func TestCollectionWithIdMergeWithCallsCombineExactlyOnce(t *testing.T) {
	c, err := NewWithId([]namedThing{{IDField: "a", Value: 1}})
	require.NoError(t, err)

	calls := 0
	before := c.Len()
	c.MergeWith([]namedThing{{IDField: "a", Value: 2}, {IDField: "c", Value: 3}},
		func(existing *namedThing, incoming namedThing) {
			calls++
			existing.Value += incoming.Value
		})

	assert.Equal(t, 1, calls)
	assert.Equal(t, before+1, c.Len())
	got, _ := c.Get("a")
	assert.Equal(t, 3, got.Value)
}

func TestCollectionWithIdGetOrCreate(t *testing.T) {
	c, err := NewWithId([]namedThing{})
	require.NoError(t, err)

	idx := c.GetOrCreate("new", func(id string) namedThing {
		return namedThing{IDField: id, Value: -1}
	})
	got := c.Index(idx)
	assert.Equal(t, "new", got.IDField)

	// Calling again for the same id returns the same entity, unmodified.
	idx2 := c.GetOrCreate("new", func(id string) namedThing {
		return namedThing{IDField: id, Value: 999}
	})
	assert.Equal(t, idx, idx2)
	assert.Equal(t, -1, c.Index(idx2).Value)
}

func TestCollectionWithIdRetainRebuildsIndex(t *testing.T) {
	c, err := NewWithId([]namedThing{{IDField: "a"}, {IDField: "b"}, {IDField: "c"}})
	require.NoError(t, err)

	c.Retain(func(v *namedThing) bool { return v.IDField != "b" })

	assert.False(t, c.ContainsID("b"))
	got, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, "c", got.IDField)
}

func TestCollectionWithIdTryMergeFailsOnCollision(t *testing.T) {
	a, err := NewWithId([]namedThing{{IDField: "x"}})
	require.NoError(t, err)
	b, err := NewWithId([]namedThing{{IDField: "x"}})
	require.NoError(t, err)

	err = a.TryMerge(b)
	assert.Error(t, err)
}

func TestCollectionWithIdMergeDropsCollisions(t *testing.T) {
	a, err := NewWithId([]namedThing{{IDField: "x", Value: 1}})
	require.NoError(t, err)
	b, err := NewWithId([]namedThing{{IDField: "x", Value: 2}, {IDField: "y", Value: 3}})
	require.NoError(t, err)

	dropped := a.Merge(b)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 2, a.Len())
	got, _ := a.Get("x")
	assert.Equal(t, 1, got.Value) // existing entry wins, not overwritten
}
