// Package model defines the concrete transit entities, assembles them into a
// validated Model, and provides merge/restrict/sanitise operations over the
// raw Collections they live in.
package model

import "github.com/transitmodel/transit-model/collection"

// CodesT mirrors the source's choice of a plain slice of (system, code)
// pairs over a map: most entities carry zero or one code, so the allocation
// and lookup cost of a map is never worth it.
type CodesT []Code

// Code is one (system, code) external-identifier pair.
type Code struct {
	System string
	Code   string
}

// Codes is implemented by every entity that carries external-system codes.
type Codes interface {
	Codes() *CodesT
}

// CommentLinks is implemented by every entity that may reference Comments.
type CommentLinks interface {
	CommentLinks() *[]string
}

// Contributor is provenance metadata attached to a Dataset.
type Contributor struct {
	IDField string
	Name    string
	License *string
	Website *string
}

func (c Contributor) ID() string       { return c.IDField }
func (c *Contributor) SetID(id string) { c.IDField = id }

// DatasetType distinguishes how a dataset's validity period was derived.
type DatasetType string

const (
	DatasetTypeTheoretical DatasetType = "theoretical"
	DatasetTypeRealtime    DatasetType = "realtime"
)

// Dataset groups vehicle journeys under one provenance and validity window.
type Dataset struct {
	IDField       string
	ContributorID string
	StartDate     Date
	EndDate       Date
	Type          DatasetType
	Extrapolation bool
	Desc          *string
	SystemField   *string
}

func (d Dataset) ID() string       { return d.IDField }
func (d *Dataset) SetID(id string) { d.IDField = id }

// Network is a commercial transport network.
type Network struct {
	IDField   string
	Name      string
	URL       *string
	CodesF    CodesT
	Timezone  *string
	Lang      *string
	Phone     *string
	Address   *string
	SortOrder *uint32
}

func (n Network) ID() string       { return n.IDField }
func (n *Network) SetID(id string) { n.IDField = id }
func (n *Network) Codes() *CodesT  { return &n.CodesF }

// Company operates vehicle journeys.
type Company struct {
	IDField string
	Name    string
	Address *string
	URL     *string
	Mail    *string
	Phone   *string
}

func (c Company) ID() string       { return c.IDField }
func (c *Company) SetID(id string) { c.IDField = id }

// CommercialMode is a rider-facing mode label (e.g. "Bus", "Tramway").
type CommercialMode struct {
	IDField string
	Name    string
}

func (m CommercialMode) ID() string       { return m.IDField }
func (m *CommercialMode) SetID(id string) { m.IDField = id }

// PhysicalMode is the vehicle technology operating a journey.
type PhysicalMode struct {
	IDField     string
	Name        string
	CO2Emission *float32
}

func (m PhysicalMode) ID() string       { return m.IDField }
func (m *PhysicalMode) SetID(id string) { m.IDField = id }

// Rgb is a colour as 8-bit red, green and blue components. No text or hex
// encoding is defined for it in this package.
type Rgb struct {
	Red, Green, Blue uint8
}

// Line is a commercial grouping of Routes.
type Line struct {
	IDField          string
	Code             *string
	CodesF           CodesT
	CommentLinksF    []string
	Name             string
	ForwardName      *string
	ForwardDir       *string
	BackwardName     *string
	BackwardDir      *string
	Color            *Rgb
	TextColor        *Rgb
	SortOrder        *uint32
	NetworkID        string
	CommercialModeID string
	GeometryID       *string
	OpeningTime      *Time
	ClosingTime      *Time
}

func (l Line) ID() string               { return l.IDField }
func (l *Line) SetID(id string)         { l.IDField = id }
func (l *Line) Codes() *CodesT          { return &l.CodesF }
func (l *Line) CommentLinks() *[]string { return &l.CommentLinksF }

// Route is a directional variant of a Line.
type Route struct {
	IDField       string
	Name          string
	DirectionType *string
	CodesF        CodesT
	CommentLinksF []string
	LineID        string
	GeometryID    *string
	DestinationID *string
}

func (r Route) ID() string               { return r.IDField }
func (r *Route) SetID(id string)         { r.IDField = id }
func (r *Route) Codes() *CodesT          { return &r.CodesF }
func (r *Route) CommentLinks() *[]string { return &r.CommentLinksF }

// VehicleJourney is a single scheduled run along a Route.
type VehicleJourney struct {
	IDField        string
	CodesF         CodesT
	CommentLinksF  []string
	RouteID        string
	PhysicalModeID string
	DatasetID      string
	ServiceID      string
	Headsign       *string
	BlockID        *string
	CompanyID      string
	TripPropertyID *string
	GeometryID     *string
	StopTimes      []StopTime
}

func (v VehicleJourney) ID() string               { return v.IDField }
func (v *VehicleJourney) SetID(id string)         { v.IDField = id }
func (v *VehicleJourney) Codes() *CodesT          { return &v.CodesF }
func (v *VehicleJourney) CommentLinks() *[]string { return &v.CommentLinksF }

// Time is a count of seconds since midnight, allowed to exceed 24h (trips
// that run past midnight report e.g. 25:30:00).
type Time uint32

// NewTime builds a Time from an (h, m, s) triple.
func NewTime(h, m, s uint32) Time {
	return Time(h*3600 + m*60 + s)
}

func (t Time) Hours() uint32   { return uint32(t) / 3600 }
func (t Time) Minutes() uint32 { return uint32(t) / 60 % 60 }
func (t Time) Seconds() uint32 { return uint32(t) % 60 }

// PickupDropoffType mirrors the GTFS-derived pickup_type/drop_off_type
// vocabulary: 0 regular, 1 no pickup/drop-off, 2 phone agency, 3 route
// point (vehicle passes but does not board/alight).
type PickupDropoffType uint8

const (
	PickupDropoffRegular     PickupDropoffType = 0
	PickupDropoffNone        PickupDropoffType = 1
	PickupDropoffPhoneAgency PickupDropoffType = 2
	PickupDropoffRoutePoint  PickupDropoffType = 3
)

// StopTime is one (arrival, departure) pair for a VehicleJourney at a stop
// point. It has no independent identity: indices are only meaningful within
// the StopPoint collection of the Collections snapshot it was built against.
type StopTime struct {
	StopPointIdx      collection.Idx[StopPoint]
	Sequence          uint32
	ArrivalTime       Time
	DepartureTime     Time
	BoardingDuration  uint16
	AlightingDuration uint16
	PickupType        PickupDropoffType
	DropOffType       PickupDropoffType
	DatetimeEstimated bool
	LocalZoneID       *uint16
}

// IsRoutePoint reports whether st is a pass-through stop (both pickup and
// drop-off marked as route-point).
func (st StopTime) IsRoutePoint() bool {
	return st.PickupType == PickupDropoffRoutePoint && st.DropOffType == PickupDropoffRoutePoint
}

// StopTimeKey indexes the StopTime side-tables (headsigns, ids, comments).
type StopTimeKey struct {
	VehicleJourney collection.Idx[VehicleJourney]
	Sequence       uint32
}

// Coord is a WGS84 coordinate.
type Coord struct {
	Lon, Lat float64
}

// StopArea groups one or more StopPoints under a named location.
type StopArea struct {
	IDField       string
	Name          string
	CodesF        CodesT
	CommentLinksF []string
	Visible       bool
	Coord         Coord
	Timezone      *string
	GeometryID    *string
	EquipmentID   *string
}

func (s StopArea) ID() string               { return s.IDField }
func (s *StopArea) SetID(id string)         { s.IDField = id }
func (s *StopArea) Codes() *CodesT          { return &s.CodesF }
func (s *StopArea) CommentLinks() *[]string { return &s.CommentLinksF }

// StopPoint is a physical boarding location referenced by stop times.
type StopPoint struct {
	IDField       string
	Name          string
	CodesF        CodesT
	CommentLinksF []string
	Visible       bool
	Coord         Coord
	StopAreaID    string
	Timezone      *string
	GeometryID    *string
	EquipmentID   *string
	FareZoneID    *string
}

func (s StopPoint) ID() string               { return s.IDField }
func (s *StopPoint) SetID(id string)         { s.IDField = id }
func (s *StopPoint) Codes() *CodesT          { return &s.CodesF }
func (s *StopPoint) CommentLinks() *[]string { return &s.CommentLinksF }

// ExceptionType is a calendar exception kind.
type ExceptionType uint8

const (
	ExceptionAdd    ExceptionType = 1
	ExceptionRemove ExceptionType = 2
)

// Calendar is a named set of operating dates, referenced by vehicle
// journeys through ServiceID.
type Calendar struct {
	IDField string
	Dates   DateSet
}

func (c Calendar) ID() string       { return c.IDField }
func (c *Calendar) SetID(id string) { c.IDField = id }

// Overlaps reports whether c and other share at least one operating date.
func (c Calendar) Overlaps(other Calendar) bool {
	small, big := c.Dates, other.Dates
	if len(other.Dates) < len(small) {
		small, big = big, small
	}
	bigSet := make(map[Date]struct{}, len(big))
	for _, d := range big {
		bigSet[d] = struct{}{}
	}
	for _, d := range small {
		if _, ok := bigSet[d]; ok {
			return true
		}
	}
	return false
}

// Transfer describes a connection between two stop points. It has no
// independent string id; it is stored in a plain Collection, not a
// CollectionWithId.
type Transfer struct {
	FromStopID          string
	ToStopID            string
	MinTransferTime     *uint32
	RealMinTransferTime *uint32
	EquipmentID         *string
}

// Disponibility is a three-state availability flag.
type Disponibility uint8

const (
	InformationNotAvailable Disponibility = iota
	Available
	NotAvailable
)

// TripProperty describes accessibility/amenity attributes of a Line's trips.
type TripProperty struct {
	IDField              string
	WheelchairAccessible Disponibility
	BikeAccepted         Disponibility
	AirConditioned       Disponibility
	VisualAnnouncement   Disponibility
	AudibleAnnouncement  Disponibility
	AppropriateEscort    Disponibility
	AppropriateSignage   Disponibility
	SchoolVehicleType    Disponibility
}

func (p TripProperty) ID() string       { return p.IDField }
func (p *TripProperty) SetID(id string) { p.IDField = id }

// Equipment describes accessibility/amenity attributes of a stop.
type Equipment struct {
	IDField             string
	WheelchairBoarding  Disponibility
	Sheltered           Disponibility
	Elevator            Disponibility
	Escalator           Disponibility
	BikeAccepted        Disponibility
	BikeDepot           Disponibility
	VisualAnnouncement  Disponibility
	AudibleAnnouncement Disponibility
	AppropriateEscort   Disponibility
	AppropriateSignage  Disponibility
}

func (e Equipment) ID() string       { return e.IDField }
func (e *Equipment) SetID(id string) { e.IDField = id }

// Geometry is a WKT-encoded shape attached to a Line/Route/StopArea/
// StopPoint/VehicleJourney by "<kind>:<id>"-style allocation (see
// rules.ApplyPropertyEdits).
type Geometry struct {
	IDField string
	WKT     string
}

func (g Geometry) ID() string       { return g.IDField }
func (g *Geometry) SetID(id string) { g.IDField = id }

// CommentType distinguishes a rider-facing informational comment from an
// on-demand-transport notice.
type CommentType uint8

const (
	CommentInformation CommentType = iota
	CommentOnDemandTransport
)

// Comment is free-text annotation referenced by CommentLinks.
type Comment struct {
	IDField string
	Type    CommentType
	Label   *string
	Value   string
	URL     *string
}

func (c Comment) ID() string       { return c.IDField }
func (c *Comment) SetID(id string) { c.IDField = id }

// ObjectType enumerates the entity kinds a rule file or a ticket perimeter
// may refer to by name.
type ObjectType string

const (
	ObjectLine           ObjectType = "line"
	ObjectRoute          ObjectType = "route"
	ObjectStopPoint      ObjectType = "stop_point"
	ObjectStopArea       ObjectType = "stop_area"
	ObjectPhysicalMode   ObjectType = "physical_mode"
	ObjectCommercialMode ObjectType = "commercial_mode"
	ObjectNetwork        ObjectType = "network"
)

// Ticket is a fare product definition.
type Ticket struct {
	IDField string
	Name    string
	Comment *string
}

func (t Ticket) ID() string       { return t.IDField }
func (t *Ticket) SetID(id string) { t.IDField = id }

// TicketUse is one way a Ticket may be validated against a journey.
type TicketUse struct {
	IDField            string
	TicketID           string
	MaxTransfers       *uint32
	BoardingTimeLimit  *int32
	AlightingTimeLimit *int32
}

func (u TicketUse) ID() string       { return u.IDField }
func (u *TicketUse) SetID(id string) { u.IDField = id }

// TicketUsePerimeter restricts a TicketUse to a set of objects (e.g. "valid
// within Network N1"). Field shape fixed by its consumption in the
// consolidation rule (rules.ApplyConsolidations / spec scenario S6).
type TicketUsePerimeter struct {
	TicketUseID string
	ObjectType  ObjectType
	ObjectID    string
}

// TicketPrice is one priced validity window for a Ticket.
type TicketPrice struct {
	TicketID      string
	Price         float64
	Currency      string
	ValidityStart Date
	ValidityEnd   Date
}
