package model

import "github.com/transitmodel/transit-model/collection"

// Collections is the raw, mutable bag of entity arenas an adapter builds and
// the rule engine/enhancers rewrite. Model.New validates it and derives the
// relation graph; Model.IntoCollections hands it back for further mutation.
type Collections struct {
	Contributors    *collection.CollectionWithId[Contributor]
	Datasets        *collection.CollectionWithId[Dataset]
	Networks        *collection.CollectionWithId[Network]
	Companies       *collection.CollectionWithId[Company]
	CommercialModes *collection.CollectionWithId[CommercialMode]
	PhysicalModes   *collection.CollectionWithId[PhysicalMode]
	Lines           *collection.CollectionWithId[Line]
	Routes          *collection.CollectionWithId[Route]
	VehicleJourneys *collection.CollectionWithId[VehicleJourney]
	StopAreas       *collection.CollectionWithId[StopArea]
	StopPoints      *collection.CollectionWithId[StopPoint]
	Calendars       *collection.CollectionWithId[Calendar]
	TripProperties  *collection.CollectionWithId[TripProperty]
	Equipments      *collection.CollectionWithId[Equipment]
	Geometries      *collection.CollectionWithId[Geometry]
	Comments        *collection.CollectionWithId[Comment]
	Tickets         *collection.CollectionWithId[Ticket]
	TicketUses      *collection.CollectionWithId[TicketUse]

	Transfers           *collection.Collection[Transfer]
	TicketUsePerimeters []TicketUsePerimeter
	TicketPrices        []TicketPrice

	StopTimeHeadsigns map[StopTimeKey]string
	StopTimeIDs       map[StopTimeKey]string
	StopTimeComments  map[StopTimeKey][]string

	FeedInfos map[string]string
}

// NewCollections builds an empty Collections, ready for adapters to
// populate by direct field assignment or through modelbuilder.Builder.
func NewCollections() *Collections {
	c := &Collections{
		Transfers:         collection.New([]Transfer{}),
		StopTimeHeadsigns: make(map[StopTimeKey]string),
		StopTimeIDs:       make(map[StopTimeKey]string),
		StopTimeComments:  make(map[StopTimeKey][]string),
		FeedInfos:         make(map[string]string),
	}
	c.Contributors, _ = collection.NewWithId[Contributor](nil)
	c.Datasets, _ = collection.NewWithId[Dataset](nil)
	c.Networks, _ = collection.NewWithId[Network](nil)
	c.Companies, _ = collection.NewWithId[Company](nil)
	c.CommercialModes, _ = collection.NewWithId[CommercialMode](nil)
	c.PhysicalModes, _ = collection.NewWithId[PhysicalMode](nil)
	c.Lines, _ = collection.NewWithId[Line](nil)
	c.Routes, _ = collection.NewWithId[Route](nil)
	c.VehicleJourneys, _ = collection.NewWithId[VehicleJourney](nil)
	c.StopAreas, _ = collection.NewWithId[StopArea](nil)
	c.StopPoints, _ = collection.NewWithId[StopPoint](nil)
	c.Calendars, _ = collection.NewWithId[Calendar](nil)
	c.TripProperties, _ = collection.NewWithId[TripProperty](nil)
	c.Equipments, _ = collection.NewWithId[Equipment](nil)
	c.Geometries, _ = collection.NewWithId[Geometry](nil)
	c.Comments, _ = collection.NewWithId[Comment](nil)
	c.Tickets, _ = collection.NewWithId[Ticket](nil)
	c.TicketUses, _ = collection.NewWithId[TicketUse](nil)
	return c
}
