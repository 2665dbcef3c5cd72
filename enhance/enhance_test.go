package enhance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitmodel/transit-model/collection"
	"github.com/transitmodel/transit-model/model"
)

func newTestCollections(t *testing.T) (*model.Collections, collection.Idx[model.StopPoint], collection.Idx[model.StopPoint], collection.Idx[model.StopPoint], collection.Idx[model.StopPoint]) {
	t.Helper()
	c := model.NewCollections()

	sa, err := c.StopAreas.Push(model.StopArea{IDField: "SA1"})
	require.NoError(t, err)
	_ = sa

	mustStop := func(id string) collection.Idx[model.StopPoint] {
		idx, err := c.StopPoints.Push(model.StopPoint{IDField: id, StopAreaID: "SA1"})
		require.NoError(t, err)
		return idx
	}
	sp1 := mustStop("SP1")
	sp2 := mustStop("SP2")
	sp3 := mustStop("SP3")
	sp4 := mustStop("SP4")
	return c, sp1, sp2, sp3, sp4
}

func TestOrderStopTimesDropsNonMonotonic(t *testing.T) {
	c, sp1, sp2, _, _ := newTestCollections(t)
	_, err := c.Calendars.Push(model.Calendar{IDField: "cal1"})
	require.NoError(t, err)

	bad := model.VehicleJourney{
		IDField:   "VJ1",
		ServiceID: "cal1",
		StopTimes: []model.StopTime{
			{StopPointIdx: sp1, Sequence: 1, ArrivalTime: 100, DepartureTime: 50},
			{StopPointIdx: sp2, Sequence: 2, ArrivalTime: 200, DepartureTime: 250},
		},
	}
	_, err = c.VehicleJourneys.Push(bad)
	require.NoError(t, err)

	OrderStopTimes(c)

	assert.Equal(t, 0, c.VehicleJourneys.Len())
}

func TestOrderStopTimesSortsBySequence(t *testing.T) {
	c, sp1, sp2, _, _ := newTestCollections(t)
	vj := model.VehicleJourney{
		IDField: "VJ1",
		StopTimes: []model.StopTime{
			{StopPointIdx: sp2, Sequence: 2, ArrivalTime: 200, DepartureTime: 200},
			{StopPointIdx: sp1, Sequence: 1, ArrivalTime: 100, DepartureTime: 100},
		},
	}
	_, err := c.VehicleJourneys.Push(vj)
	require.NoError(t, err)

	OrderStopTimes(c)

	got, ok := c.VehicleJourneys.Get("VJ1")
	require.True(t, ok)
	assert.Equal(t, sp1, got.StopTimes[0].StopPointIdx)
	assert.Equal(t, sp2, got.StopTimes[1].StopPointIdx)
}

func TestInferPickupDropoffDefaultRule(t *testing.T) {
	c, sp1, sp2, _, _ := newTestCollections(t)
	vj := model.VehicleJourney{
		IDField: "VJ1",
		StopTimes: []model.StopTime{
			{StopPointIdx: sp1, Sequence: 1},
			{StopPointIdx: sp2, Sequence: 2},
		},
	}
	_, err := c.VehicleJourneys.Push(vj)
	require.NoError(t, err)

	InferPickupDropoff(c)

	got, _ := c.VehicleJourneys.Get("VJ1")
	assert.Equal(t, model.PickupDropoffNone, got.StopTimes[0].DropOffType)
	assert.Equal(t, model.PickupDropoffNone, got.StopTimes[1].PickupType)
}

func TestInferPickupDropoffStayIn(t *testing.T) {
	c, sp1, sp2, sp3, sp4 := newTestCollections(t)
	_, err := c.Calendars.Push(model.Calendar{IDField: "cal1", Dates: model.NewDateSet([]model.Date{model.NewDate(2020, 1, 1)})})
	require.NoError(t, err)

	block := "X"
	a := model.VehicleJourney{
		IDField: "A", BlockID: &block, ServiceID: "cal1",
		StopTimes: []model.StopTime{
			{StopPointIdx: sp1, Sequence: 1, ArrivalTime: model.NewTime(10, 0, 0), DepartureTime: model.NewTime(10, 0, 0)},
			{StopPointIdx: sp2, Sequence: 2, ArrivalTime: model.NewTime(11, 0, 0), DepartureTime: model.NewTime(11, 0, 0)},
		},
	}
	b := model.VehicleJourney{
		IDField: "B", BlockID: &block, ServiceID: "cal1",
		StopTimes: []model.StopTime{
			{StopPointIdx: sp3, Sequence: 1, ArrivalTime: model.NewTime(12, 0, 0), DepartureTime: model.NewTime(12, 0, 0)},
			{StopPointIdx: sp4, Sequence: 2, ArrivalTime: model.NewTime(13, 0, 0), DepartureTime: model.NewTime(13, 0, 0)},
		},
	}
	_, err = c.VehicleJourneys.Push(a)
	require.NoError(t, err)
	_, err = c.VehicleJourneys.Push(b)
	require.NoError(t, err)

	InferPickupDropoff(c)

	gotA, _ := c.VehicleJourneys.Get("A")
	gotB, _ := c.VehicleJourneys.Get("B")
	assert.Equal(t, model.PickupDropoffRegular, gotA.StopTimes[1].PickupType, "stay-in: pickup at A.last must not be forbidden")
	assert.Equal(t, model.PickupDropoffRegular, gotB.StopTimes[0].DropOffType, "stay-in: drop-off at B.first must not be forbidden")
}

func TestMergeRoutePointsSubsequenceAndIdempotent(t *testing.T) {
	_, sp1, sp2, sp3, sp4 := newTestCollections(t)

	vjA := []collection.Idx[model.StopPoint]{sp1, sp2, sp4}
	vjB := []collection.Idx[model.StopPoint]{sp1, sp3, sp4}

	merged := MergeRoutePoints([][]collection.Idx[model.StopPoint]{vjA, vjB})
	assert.Equal(t, RoutePointOrder{sp1, sp2, sp3, sp4}, merged)

	again := MergeRoutePoints([][]collection.Idx[model.StopPoint]{merged})
	assert.Equal(t, merged, again)
}
