package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitmodel/transit-model/model"
)

func newFixture(t *testing.T) *model.Collections {
	t.Helper()
	c := model.NewCollections()
	_, err := c.Contributors.Push(model.Contributor{IDField: "ctr:c1", Name: "Contributor"})
	require.NoError(t, err)
	_, err = c.Networks.Push(model.Network{IDField: "N1", Name: "Network 1"})
	require.NoError(t, err)
	_, err = c.Networks.Push(model.Network{IDField: "N2", Name: "Network 2"})
	require.NoError(t, err)
	_, err = c.CommercialModes.Push(model.CommercialMode{IDField: "bus", Name: "Bus"})
	require.NoError(t, err)
	_, err = c.PhysicalModes.Push(model.PhysicalMode{IDField: "bus", Name: "Bus"})
	require.NoError(t, err)
	_, err = c.PhysicalModes.Push(model.PhysicalMode{IDField: "tram", Name: "Tram"})
	require.NoError(t, err)
	_, err = c.Lines.Push(model.Line{IDField: "L1", Name: "Line 1", NetworkID: "N1", CommercialModeID: "bus"})
	require.NoError(t, err)
	_, err = c.Routes.Push(model.Route{IDField: "R1", Name: "Route 1", LineID: "L1"})
	require.NoError(t, err)
	_, err = c.VehicleJourneys.Push(model.VehicleJourney{IDField: "VJ1", RouteID: "R1", PhysicalModeID: "bus"})
	require.NoError(t, err)
	_, err = c.StopAreas.Push(model.StopArea{IDField: "SA1", Name: "Area 1"})
	require.NoError(t, err)
	_, err = c.StopPoints.Push(model.StopPoint{IDField: "SP1", Name: "Stop 1", StopAreaID: "SA1"})
	require.NoError(t, err)
	return c
}

func TestApplyObjectCodesInsertsAndFlagsMissing(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	ApplyObjectCodes(c, []ObjectCodeRow{
		{ObjectType: model.ObjectLine, ObjectID: "L1", System: "gtfs", Code: "42"},
		{ObjectType: model.ObjectLine, ObjectID: "L1", System: "gtfs", Code: "42"}, // idempotent duplicate
		{ObjectType: model.ObjectLine, ObjectID: "missing", System: "gtfs", Code: "x"},
	}, report)

	l, _ := c.Lines.Get("L1")
	assert.Equal(t, model.CodesT{{System: "gtfs", Code: "42"}}, l.CodesF)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, ObjectNotFound, report.Warnings[0].Category)
}

func TestApplyPropertyEditsNameChange(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	any := "*"
	ApplyPropertyEdits(c, []PropertyEditRow{
		{ObjectType: model.ObjectLine, ObjectID: "L1", PropertyName: "name", OldValue: &any, NewValue: "New Name"},
	}, report)

	l, _ := c.Lines.Get("L1")
	assert.Equal(t, "New Name", l.Name)
	assert.True(t, report.IsClean())
}

func TestApplyPropertyEditsOldValueMismatch(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	wrong := "Not The Name"
	ApplyPropertyEdits(c, []PropertyEditRow{
		{ObjectType: model.ObjectLine, ObjectID: "L1", PropertyName: "name", OldValue: &wrong, NewValue: "New Name"},
	}, report)

	l, _ := c.Lines.Get("L1")
	assert.Equal(t, "Line 1", l.Name)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, OldPropertyValueDoesNotMatch, report.Warnings[0].Category)
}

func TestApplyPropertyEditsUnknownPropertyName(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	ApplyPropertyEdits(c, []PropertyEditRow{
		{ObjectType: model.ObjectLine, ObjectID: "L1", PropertyName: "made_up_field", NewValue: "x"},
	}, report)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, UnknownPropertyName, report.Warnings[0].Category)
}

func TestApplyPropertyEditsMultipleValueConflict(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	ApplyPropertyEdits(c, []PropertyEditRow{
		{ObjectType: model.ObjectLine, ObjectID: "L1", PropertyName: "name", NewValue: "A"},
		{ObjectType: model.ObjectLine, ObjectID: "L1", PropertyName: "name", NewValue: "B"},
	}, report)

	l, _ := c.Lines.Get("L1")
	assert.Equal(t, "Line 1", l.Name) // unchanged
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, MultipleValue, report.Warnings[0].Category)
}

func TestApplyPropertyEditsGeometryAndCoord(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	ApplyPropertyEdits(c, []PropertyEditRow{
		{ObjectType: model.ObjectLine, ObjectID: "L1", PropertyName: "geometry_id", NewValue: "LINESTRING (2.3 48.8, 2.4 48.9)"},
		{ObjectType: model.ObjectStopPoint, ObjectID: "SP1", PropertyName: "coord", NewValue: "POINT (2.35 48.85)"},
	}, report)

	l, _ := c.Lines.Get("L1")
	require.NotNil(t, l.GeometryID)
	geo, ok := c.Geometries.Get(*l.GeometryID)
	require.True(t, ok)
	assert.Contains(t, geo.WKT, "LINESTRING")

	sp, _ := c.StopPoints.Get("SP1")
	assert.InDelta(t, 48.85, sp.Coord.Lat, 1e-9)
	assert.InDelta(t, 2.35, sp.Coord.Lon, 1e-9)
	assert.True(t, report.IsClean())
}

func TestApplyPropertyEditsCoordRejectsNonPoint(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	ApplyPropertyEdits(c, []PropertyEditRow{
		{ObjectType: model.ObjectStopPoint, ObjectID: "SP1", PropertyName: "coord", NewValue: "LINESTRING (2.3 48.8, 2.4 48.9)"},
	}, report)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, GeometryNotValid, report.Warnings[0].Category)
}

func TestApplyPropertyEditsPhysicalModeCascade(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	any := "*"
	ApplyPropertyEdits(c, []PropertyEditRow{
		{ObjectType: model.ObjectLine, ObjectID: "L1", PropertyName: "physical_mode_id", OldValue: &any, NewValue: "tram"},
	}, report)

	vj, _ := c.VehicleJourneys.Get("VJ1")
	assert.Equal(t, "tram", vj.PhysicalModeID)
	assert.True(t, report.IsClean())
}

func TestApplyEquipmentEditsCreatesAndDedups(t *testing.T) {
	c := newFixture(t)
	_, err := c.StopPoints.Push(model.StopPoint{IDField: "SP2", Name: "Stop 2", StopAreaID: "SA1"})
	require.NoError(t, err)
	report := &Report{}

	rows := []PropertyEditRow{
		{ObjectType: model.ObjectStopPoint, ObjectID: "SP1", PropertyName: "wheelchair_boarding", NewValue: "1"},
		{ObjectType: model.ObjectStopPoint, ObjectID: "SP2", PropertyName: "wheelchair_boarding", NewValue: "1"},
	}
	ApplyEquipmentEdits(c, rows, report)

	sp1, _ := c.StopPoints.Get("SP1")
	sp2, _ := c.StopPoints.Get("SP2")
	require.NotNil(t, sp1.EquipmentID)
	require.NotNil(t, sp2.EquipmentID)
	assert.Equal(t, *sp1.EquipmentID, *sp2.EquipmentID, "identical equipment should dedup to one entity")
	assert.Equal(t, 1, c.Equipments.Len())

	eq, _ := c.Equipments.Get(*sp1.EquipmentID)
	assert.Equal(t, model.Available, eq.WheelchairBoarding)
	assert.True(t, report.IsClean())
}

func TestApplyTripPropertyEditsAppliesToEveryVJOnLine(t *testing.T) {
	c := newFixture(t)
	_, err := c.VehicleJourneys.Push(model.VehicleJourney{IDField: "VJ2", RouteID: "R1", PhysicalModeID: "bus"})
	require.NoError(t, err)
	report := &Report{}

	ApplyTripPropertyEdits(c, []PropertyEditRow{
		{ObjectType: model.ObjectLine, ObjectID: "L1", PropertyName: "bike_accepted", NewValue: "1"},
	}, report)

	vj1, _ := c.VehicleJourneys.Get("VJ1")
	vj2, _ := c.VehicleJourneys.Get("VJ2")
	require.NotNil(t, vj1.TripPropertyID)
	require.NotNil(t, vj2.TripPropertyID)
	assert.Equal(t, *vj1.TripPropertyID, *vj2.TripPropertyID)
	assert.True(t, report.IsClean())
}

func TestApplyConsolidationsReassignsAndDeletesSource(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	file := ConsolidationFile{
		Networks: []NetworkConsolidation{
			{Target: model.Network{IDField: "N1", Name: "Network 1"}, GroupedFrom: []string{"N2"}},
		},
	}
	ApplyConsolidations(c, file, report)

	l, _ := c.Lines.Get("L1")
	assert.Equal(t, "N1", l.NetworkID)
	assert.False(t, c.Networks.ContainsID("N2"))
	assert.True(t, c.Networks.ContainsID("N1"))
	assert.True(t, report.IsClean())
}

func TestApplyConsolidationsMissingSourceIsError(t *testing.T) {
	c := newFixture(t)
	report := &Report{}

	file := ConsolidationFile{
		Networks: []NetworkConsolidation{
			{Target: model.Network{IDField: "N1", Name: "Network 1"}, GroupedFrom: []string{"unknown"}},
		},
	}
	ApplyConsolidations(c, file, report)

	require.Len(t, report.Errors, 2) // the missing source, then "rule was not applied"
	for _, e := range report.Errors {
		assert.Equal(t, ObjectNotFound, e.Category)
	}
}
