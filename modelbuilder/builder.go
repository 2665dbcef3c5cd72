// Package modelbuilder provides a fluent way to assemble a model.Model for
// tests and examples, without hand-writing every Collections field.
package modelbuilder

import (
	"fmt"
	"time"

	"github.com/transitmodel/transit-model/collection"
	"github.com/transitmodel/transit-model/geometry"
	"github.com/transitmodel/transit-model/model"
)

const (
	defaultCalendarID       = "default_service"
	defaultRouteID          = "default_route"
	defaultLineID           = "default_line"
	defaultNetworkID        = "default_network"
	defaultCommercialModeID = "default_commercial_mode"
	defaultPhysicalModeID   = "default_physical_mode"
	defaultContributorID    = "default_contributor"
	defaultDatasetID        = "default_dataset"
	defaultCompanyID        = "default_company"
)

// Builder assembles a Collections through chained calls, then hands it to
// model.New. Zero value is not usable; use New.
type Builder struct {
	collections *model.Collections
	start, end  model.Date
}

// New returns a Builder whose vehicle journeys default to running every day
// in [start, end] on defaultCalendarID, unless a journey is given its own
// Calendar call.
func New(start, end model.Date) *Builder {
	b := &Builder{collections: model.NewCollections(), start: start, end: end}
	dates := make([]model.Date, 0)
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	b.Calendar(defaultCalendarID, dates...)
	return b
}

// Default returns a Builder covering 2020-01-01, matching the teacher's
// single-day default validity period.
func Default() *Builder {
	d := model.NewDate(2020, time.January, 1)
	return New(d, d)
}

// Collections returns the Collections built so far, without validating it.
func (b *Builder) Collections() *model.Collections {
	return b.collections
}

// Build validates the assembled Collections and returns the resulting Model.
func (b *Builder) Build() (*model.Model, error) {
	return model.New(b.collections)
}

// Calendar adds dates to the named Calendar, creating it if absent.
func (b *Builder) Calendar(id string, dates ...model.Date) *Builder {
	ref := b.collections.Calendars.GetMut(id)
	if ref == nil {
		idx, err := b.collections.Calendars.Push(model.Calendar{IDField: id})
		if err != nil {
			panic(fmt.Sprintf("modelbuilder: calendar %q: %v", id, err))
		}
		ref = b.collections.Calendars.IndexMut(idx)
	}
	ref.Value().Dates = model.NewDateSet(append(append([]model.Date{}, ref.Value().Dates...), dates...))
	ref.Release()
	return b
}

// Route adds or edits a Route, running edit against it (on creation, its
// LineID defaults to defaultLineID until a VehicleJourney builder overrides
// it).
func (b *Builder) Route(id string, edit func(*model.Route)) *Builder {
	idx := b.collections.Routes.GetOrCreate(id, func(id string) model.Route {
		return model.Route{IDField: id, LineID: defaultLineID}
	})
	ref := b.collections.Routes.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// Network adds or edits a Network.
func (b *Builder) Network(id string, edit func(*model.Network)) *Builder {
	idx := b.collections.Networks.GetOrCreate(id, func(id string) model.Network {
		return model.Network{IDField: id, Name: id}
	})
	ref := b.collections.Networks.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// Line adds or edits a Line.
func (b *Builder) Line(id string, edit func(*model.Line)) *Builder {
	idx := b.collections.Lines.GetOrCreate(id, func(id string) model.Line {
		return model.Line{IDField: id, Name: id, NetworkID: defaultNetworkID, CommercialModeID: defaultCommercialModeID}
	})
	ref := b.collections.Lines.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// CommercialMode adds or edits a CommercialMode.
func (b *Builder) CommercialMode(id string, edit func(*model.CommercialMode)) *Builder {
	idx := b.collections.CommercialModes.GetOrCreate(id, func(id string) model.CommercialMode {
		return model.CommercialMode{IDField: id, Name: id}
	})
	ref := b.collections.CommercialModes.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// PhysicalMode adds or edits a PhysicalMode.
func (b *Builder) PhysicalMode(id string, edit func(*model.PhysicalMode)) *Builder {
	idx := b.collections.PhysicalModes.GetOrCreate(id, func(id string) model.PhysicalMode {
		return model.PhysicalMode{IDField: id, Name: id}
	})
	ref := b.collections.PhysicalModes.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// StopArea adds or edits a StopArea.
func (b *Builder) StopArea(id string, edit func(*model.StopArea)) *Builder {
	idx := b.collections.StopAreas.GetOrCreate(id, func(id string) model.StopArea {
		return model.StopArea{IDField: id, Name: id, Visible: true}
	})
	ref := b.collections.StopAreas.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// StopPoint adds or edits a StopPoint, auto-creating its StopArea
// ("sa:"+id) the first time the stop is seen.
func (b *Builder) StopPoint(id string, edit func(*model.StopPoint)) *Builder {
	saID := "sa:" + id
	idx := b.collections.StopPoints.GetOrCreate(id, func(id string) model.StopPoint {
		b.StopArea(saID, func(sa *model.StopArea) { sa.Name = "sa " + id })
		return model.StopPoint{IDField: id, Name: id, StopAreaID: saID, Visible: true}
	})
	ref := b.collections.StopPoints.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// Equipment adds or edits an Equipment.
func (b *Builder) Equipment(id string, edit func(*model.Equipment)) *Builder {
	idx := b.collections.Equipments.GetOrCreate(id, func(id string) model.Equipment {
		return model.Equipment{IDField: id}
	})
	ref := b.collections.Equipments.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// TripProperty adds or edits a TripProperty.
func (b *Builder) TripProperty(id string, edit func(*model.TripProperty)) *Builder {
	idx := b.collections.TripProperties.GetOrCreate(id, func(id string) model.TripProperty {
		return model.TripProperty{IDField: id}
	})
	ref := b.collections.TripProperties.IndexMut(idx)
	if edit != nil {
		edit(ref.Value())
	}
	ref.Release()
	return b
}

// Geometry parses wkt and stores it under id, failing fast on malformed WKT
// rather than deferring the error to Build.
func (b *Builder) Geometry(id, wkt string) *Builder {
	if _, err := geometry.ParseWKT(wkt); err != nil {
		panic(fmt.Sprintf("modelbuilder: geometry %q: %v", id, err))
	}
	b.collections.Geometries.GetOrCreate(id, func(id string) model.Geometry {
		return model.Geometry{IDField: id, WKT: wkt}
	})
	return b
}

// Transfer appends a transfer between two stop points, in seconds.
func (b *Builder) Transfer(fromStopID, toStopID string, seconds uint32) *Builder {
	_, _ = b.collections.Transfers.Push(model.Transfer{
		FromStopID:          fromStopID,
		ToStopID:            toStopID,
		MinTransferTime:     &seconds,
		RealMinTransferTime: &seconds,
	})
	return b
}

// Vj opens a VehicleJourneyBuilder for a new vehicle journey named id, runs
// init against it, and finalizes any owning entities (route, line, network,
// calendar, ...) left unset once init returns.
func (b *Builder) Vj(id string, init func(*VehicleJourneyBuilder)) *Builder {
	idx, err := b.collections.VehicleJourneys.Push(model.VehicleJourney{
		IDField:   id,
		DatasetID: defaultDatasetID,
		ServiceID: defaultCalendarID,
		CompanyID: defaultCompanyID,
	})
	if err != nil {
		panic(fmt.Sprintf("modelbuilder: vehicle journey %q already exists: %v", id, err))
	}

	vb := &VehicleJourneyBuilder{b: b, idx: idx}
	if init != nil {
		init(vb)
	}
	vb.finish()
	return b
}

// VehicleJourneyBuilder configures one VehicleJourney and the stop times it
// visits. Obtained from Builder.Vj; not meant to be constructed directly.
type VehicleJourneyBuilder struct {
	b                *Builder
	idx              collection.Idx[model.VehicleJourney]
	routeID          string
	lineID           string
	networkID        string
	commercialModeID string
	physicalModeID   string
}

func (vb *VehicleJourneyBuilder) vj() *model.VehicleJourney {
	return vb.b.collections.VehicleJourneys.Index(vb.idx)
}

// St appends a regular stop time, creating the named stop point (and its
// stop area) on first use.
func (vb *VehicleJourneyBuilder) St(stopID string, arrival, departure model.Time) *VehicleJourneyBuilder {
	return vb.StDetailed(stopID, arrival, departure, model.PickupDropoffRegular, model.PickupDropoffRegular, nil)
}

// StSkip appends a pass-through stop time (vehicle does not board/alight).
func (vb *VehicleJourneyBuilder) StSkip(stopID string, passTime model.Time) *VehicleJourneyBuilder {
	return vb.StDetailed(stopID, passTime, passTime, model.PickupDropoffRoutePoint, model.PickupDropoffRoutePoint, nil)
}

// StDetailed appends a fully specified stop time.
func (vb *VehicleJourneyBuilder) StDetailed(stopID string, arrival, departure model.Time, pickup, dropOff model.PickupDropoffType, localZoneID *uint16) *VehicleJourneyBuilder {
	vb.b.StopPoint(stopID, nil)
	spIdx, _ := vb.b.collections.StopPoints.GetIdx(stopID)

	ref := vb.b.collections.VehicleJourneys.IndexMut(vb.idx)
	vj := ref.Value()
	vj.StopTimes = append(vj.StopTimes, model.StopTime{
		StopPointIdx:  spIdx,
		Sequence:      uint32(len(vj.StopTimes)),
		ArrivalTime:   arrival,
		DepartureTime: departure,
		PickupType:    pickup,
		DropOffType:   dropOff,
		LocalZoneID:   localZoneID,
	})
	ref.Release()
	return vb
}

// Route sets the journey's route id, deferring route/line creation to finish.
func (vb *VehicleJourneyBuilder) Route(id string) *VehicleJourneyBuilder {
	vb.routeID = id
	return vb
}

// Line sets the journey's line id directly, bypassing the route's own LineID.
func (vb *VehicleJourneyBuilder) Line(id string) *VehicleJourneyBuilder {
	vb.lineID = id
	return vb
}

// Network sets the journey's network id directly.
func (vb *VehicleJourneyBuilder) Network(id string) *VehicleJourneyBuilder {
	vb.networkID = id
	return vb
}

// CommercialMode sets the journey's commercial mode id directly.
func (vb *VehicleJourneyBuilder) CommercialMode(id string) *VehicleJourneyBuilder {
	vb.commercialModeID = id
	return vb
}

// PhysicalMode sets the journey's physical mode id.
func (vb *VehicleJourneyBuilder) PhysicalMode(id string) *VehicleJourneyBuilder {
	vb.physicalModeID = id
	vb.vj().PhysicalModeID = id
	return vb
}

// Calendar sets the journey's service id (Calendar), creating an empty one
// if it doesn't already exist.
func (vb *VehicleJourneyBuilder) Calendar(id string) *VehicleJourneyBuilder {
	vb.vj().ServiceID = id
	return vb
}

// Company sets the journey's operating company id.
func (vb *VehicleJourneyBuilder) Company(id string) *VehicleJourneyBuilder {
	vb.vj().CompanyID = id
	return vb
}

// Headsign sets the journey's rider-facing headsign.
func (vb *VehicleJourneyBuilder) Headsign(text string) *VehicleJourneyBuilder {
	t := text
	vb.vj().Headsign = &t
	return vb
}

// BlockID sets the journey's block id, used to group journeys sharing one
// physical vehicle run.
func (vb *VehicleJourneyBuilder) BlockID(id string) *VehicleJourneyBuilder {
	bid := id
	vb.vj().BlockID = &bid
	return vb
}

// TripProperty sets the journey's accessibility/trip-property id, creating
// it with zero-value Disponibilities if absent.
func (vb *VehicleJourneyBuilder) TripProperty(id string) *VehicleJourneyBuilder {
	vb.b.TripProperty(id, nil)
	vb.vj().TripPropertyID = &id
	return vb
}

// finish materializes the journey's owning hierarchy: any of route, line,
// network, commercial mode, physical mode, calendar, dataset, contributor,
// or company left unset by the builder calls above get a default id and, if
// that id names a not-yet-existing entity, a zero-value placeholder.
func (vb *VehicleJourneyBuilder) finish() {
	c := vb.b.collections

	c.Datasets.GetOrCreate(defaultDatasetID, func(id string) model.Dataset {
		return model.Dataset{IDField: id, ContributorID: defaultContributorID, StartDate: vb.b.start, EndDate: vb.b.end}
	})
	c.Contributors.GetOrCreate(defaultContributorID, func(id string) model.Contributor {
		return model.Contributor{IDField: id, Name: id}
	})
	c.Companies.GetOrCreate(vb.vj().CompanyID, func(id string) model.Company {
		return model.Company{IDField: id, Name: id}
	})
	c.Calendars.GetOrCreate(vb.vj().ServiceID, func(id string) model.Calendar {
		return model.Calendar{IDField: id}
	})

	routeID := vb.routeID
	if routeID == "" {
		routeID = defaultRouteID
	}
	vb.vj().RouteID = routeID

	lineID := vb.lineID
	routeIdx := c.Routes.GetOrCreate(routeID, func(id string) model.Route {
		rLineID := lineID
		if rLineID == "" {
			rLineID = defaultLineID
		}
		return model.Route{IDField: id, Name: id, LineID: rLineID}
	})
	route := c.Routes.Index(routeIdx)
	if lineID == "" {
		lineID = route.LineID
	} else {
		route.LineID = lineID
	}

	networkID := vb.networkID
	commercialModeID := vb.commercialModeID
	lineIdx := c.Lines.GetOrCreate(lineID, func(id string) model.Line {
		n := networkID
		if n == "" {
			n = defaultNetworkID
		}
		cm := commercialModeID
		if cm == "" {
			cm = defaultCommercialModeID
		}
		return model.Line{IDField: id, Name: id, NetworkID: n, CommercialModeID: cm}
	})
	line := c.Lines.Index(lineIdx)
	if networkID == "" {
		networkID = line.NetworkID
	} else {
		line.NetworkID = networkID
	}
	if commercialModeID == "" {
		commercialModeID = line.CommercialModeID
	} else {
		line.CommercialModeID = commercialModeID
	}

	c.Networks.GetOrCreate(networkID, func(id string) model.Network { return model.Network{IDField: id, Name: id} })
	c.CommercialModes.GetOrCreate(commercialModeID, func(id string) model.CommercialMode {
		return model.CommercialMode{IDField: id, Name: id}
	})

	if vb.physicalModeID == "" {
		vb.vj().PhysicalModeID = defaultPhysicalModeID
	}
	c.PhysicalModes.GetOrCreate(vb.vj().PhysicalModeID, func(id string) model.PhysicalMode {
		return model.PhysicalMode{IDField: id, Name: id}
	})
}
