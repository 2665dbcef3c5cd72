package relations

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/transitmodel/transit-model/collection"
)

type network struct{}
type line struct{}
type route struct{}
type stopPoint struct{}

func idx[T any](i uint32) collection.Idx[T] { return collection.FromIndex[T](i) }

func TestIdxSetBasics(t *testing.T) {
	s := NewIdxSet(idx[line](0), idx[line](2))
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(idx[line](0)))
	assert.False(t, s.Contains(idx[line](1)))

	other := NewIdxSet(idx[line](1))
	union := s.Union(other)
	assert.Equal(t, 3, union.Len())
	assert.Equal(t, []collection.Idx[line]{idx[line](0), idx[line](1), idx[line](2)}, union.ToSlice())
}

func TestOneToManyForwardBackward(t *testing.T) {
	lines := []collection.Idx[line]{idx[line](0), idx[line](1), idx[line](2)}
	owner := map[collection.Idx[line]]collection.Idx[network]{
		idx[line](0): idx[network](0),
		idx[line](1): idx[network](0),
		idx[line](2): idx[network](1),
	}
	rel := BuildOneToMany[network, line](lines, func(l collection.Idx[line]) (collection.Idx[network], bool) {
		n, ok := owner[l]
		return n, ok
	})

	got := rel.GetFromA(idx[network](0))
	assert.Equal(t, []collection.Idx[line]{idx[line](0), idx[line](1)}, got.ToSlice())

	n, ok := rel.GetFromB(idx[line](2))
	assert.True(t, ok)
	assert.Equal(t, idx[network](1), n)
}

func TestGraphEmptyInputReturnsEmptyOutput(t *testing.T) {
	g := NewGraph()
	g.AddRelation("Network", "Line", 1.0,
		func(b *roaring.Bitmap) *roaring.Bitmap { return b },
		func(b *roaring.Bitmap) *roaring.Bitmap { return b })

	empty := NewIdxSet[network]()
	out := GetCorresponding[network, line](g, "Network", "Line", empty)
	assert.True(t, out.IsEmpty())
}

func TestGraphSamePathScenario(t *testing.T) {
	// N1 -> L1 -> R1 -> V1 stopping at SP1, SP2 (spec scenario S3 shape).
	g := NewGraph()

	networkToLine := BuildOneToMany[network, line]([]collection.Idx[line]{idx[line](0)},
		func(l collection.Idx[line]) (collection.Idx[network], bool) { return idx[network](0), true })
	lineToRoute := BuildOneToMany[line, route]([]collection.Idx[route]{idx[route](0)},
		func(r collection.Idx[route]) (collection.Idx[line], bool) { return idx[line](0), true })
	routeStopPoints := NewManyToMany[route, stopPoint]()
	routeStopPoints.Add(idx[route](0), idx[stopPoint](0))
	routeStopPoints.Add(idx[route](0), idx[stopPoint](1))

	g.AddRelation("Network", "Line", 1.0,
		rawOf(networkToLine.Forward), rawOfBack(networkToLine.Backward))
	g.AddRelation("Line", "Route", 1.0,
		rawOf(lineToRoute.Forward), rawOfBack(lineToRoute.Backward))
	g.AddRelation("Route", "StopPoint", 1.0,
		rawOf(routeStopPoints.Forward), rawOf(routeStopPoints.Backward))

	input := NewIdxSet(idx[network](0))
	out := GetCorresponding[network, stopPoint](g, "Network", "StopPoint", input)
	assert.ElementsMatch(t, []collection.Idx[stopPoint]{idx[stopPoint](0), idx[stopPoint](1)}, out.ToSlice())
}

func rawOf[A, B any](f func(IdxSet[A]) IdxSet[B]) rawClosure {
	return func(b *roaring.Bitmap) *roaring.Bitmap {
		return f(fromBitmap[A](b)).Raw()
	}
}

func rawOfBack[A, B any](f func(IdxSet[B]) IdxSet[A]) rawClosure {
	return func(b *roaring.Bitmap) *roaring.Bitmap {
		return f(fromBitmap[B](b)).Raw()
	}
}
