package model

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/transitmodel/transit-model/collection"
	"github.com/transitmodel/transit-model/relations"
)

// Model wraps a validated Collections plus its eagerly-built relation
// graph. Once constructed it is read-only through its exported methods;
// further mutation requires IntoCollections to get the raw collections
// back, mutate them, and build a fresh Model.
type Model struct {
	collections *Collections
	graph       *relations.Graph

	networkLine        *relations.OneToMany[Network, Line]
	commercialModeLine *relations.OneToMany[CommercialMode, Line]
	lineRoute          *relations.OneToMany[Line, Route]
	routeVJ            *relations.OneToMany[Route, VehicleJourney]
	physicalModeVJ     *relations.OneToMany[PhysicalMode, VehicleJourney]
	datasetVJ          *relations.OneToMany[Dataset, VehicleJourney]
	companyVJ          *relations.OneToMany[Company, VehicleJourney]
	contributorDataset *relations.OneToMany[Contributor, Dataset]
	stopAreaStopPoint  *relations.OneToMany[StopArea, StopPoint]
	vjStopPoints       *relations.ManyToMany[VehicleJourney, StopPoint]
}

// New validates referential integrity across collections, then builds the
// relation graph eagerly. It never returns a partially constructed Model.
func New(collections *Collections) (*Model, error) {
	if err := validate(collections); err != nil {
		return nil, err
	}

	m := &Model{collections: collections}
	m.buildBaseRelations()
	m.buildGraph()
	return m, nil
}

// Collections returns read-through access to the inner collections. Mutation
// through these pointers does not invalidate an already-built Model's
// relation graph, which is why rule application always goes through
// IntoCollections to force a deliberate rebuild.
func (m *Model) Collections() *Collections {
	return m.collections
}

// IntoCollections consumes the Model and returns its Collections for
// mutation, e.g. by the rule engine or an enhancer.
func (m *Model) IntoCollections() *Collections {
	return m.collections
}

func validate(c *Collections) error {
	for _, d := range c.Datasets.Values() {
		if !c.Contributors.ContainsID(d.ContributorID) {
			return referentialIntegrityError("Contributor", d.ContributorID)
		}
	}
	for _, l := range c.Lines.Values() {
		if !c.Networks.ContainsID(l.NetworkID) {
			return referentialIntegrityError("Network", l.NetworkID)
		}
		if !c.CommercialModes.ContainsID(l.CommercialModeID) {
			return referentialIntegrityError("CommercialMode", l.CommercialModeID)
		}
		if l.GeometryID != nil && !c.Geometries.ContainsID(*l.GeometryID) {
			return referentialIntegrityError("Geometry", *l.GeometryID)
		}
	}
	for _, r := range c.Routes.Values() {
		if !c.Lines.ContainsID(r.LineID) {
			return referentialIntegrityError("Line", r.LineID)
		}
		if r.GeometryID != nil && !c.Geometries.ContainsID(*r.GeometryID) {
			return referentialIntegrityError("Geometry", *r.GeometryID)
		}
	}
	for _, sp := range c.StopPoints.Values() {
		if !c.StopAreas.ContainsID(sp.StopAreaID) {
			return referentialIntegrityError("StopArea", sp.StopAreaID)
		}
		if sp.GeometryID != nil && !c.Geometries.ContainsID(*sp.GeometryID) {
			return referentialIntegrityError("Geometry", *sp.GeometryID)
		}
		if sp.EquipmentID != nil && !c.Equipments.ContainsID(*sp.EquipmentID) {
			return referentialIntegrityError("Equipment", *sp.EquipmentID)
		}
	}
	for _, sa := range c.StopAreas.Values() {
		if sa.GeometryID != nil && !c.Geometries.ContainsID(*sa.GeometryID) {
			return referentialIntegrityError("Geometry", *sa.GeometryID)
		}
		if sa.EquipmentID != nil && !c.Equipments.ContainsID(*sa.EquipmentID) {
			return referentialIntegrityError("Equipment", *sa.EquipmentID)
		}
	}
	for _, vj := range c.VehicleJourneys.Values() {
		if !c.Routes.ContainsID(vj.RouteID) {
			return referentialIntegrityError("Route", vj.RouteID)
		}
		if !c.PhysicalModes.ContainsID(vj.PhysicalModeID) {
			return referentialIntegrityError("PhysicalMode", vj.PhysicalModeID)
		}
		if !c.Datasets.ContainsID(vj.DatasetID) {
			return referentialIntegrityError("Dataset", vj.DatasetID)
		}
		if !c.Calendars.ContainsID(vj.ServiceID) {
			return referentialIntegrityError("Calendar", vj.ServiceID)
		}
		if !c.Companies.ContainsID(vj.CompanyID) {
			return referentialIntegrityError("Company", vj.CompanyID)
		}
		if vj.TripPropertyID != nil && !c.TripProperties.ContainsID(*vj.TripPropertyID) {
			return referentialIntegrityError("TripProperty", *vj.TripPropertyID)
		}
		if vj.GeometryID != nil && !c.Geometries.ContainsID(*vj.GeometryID) {
			return referentialIntegrityError("Geometry", *vj.GeometryID)
		}
		for _, st := range vj.StopTimes {
			_ = st.StopPointIdx // valid by construction: Idx values only come from c.StopPoints
		}
	}
	for _, t := range c.Transfers.Values() {
		if !c.StopPoints.ContainsID(t.FromStopID) {
			return referentialIntegrityError("StopPoint", t.FromStopID)
		}
		if !c.StopPoints.ContainsID(t.ToStopID) {
			return referentialIntegrityError("StopPoint", t.ToStopID)
		}
	}
	for _, tu := range c.TicketUses.Values() {
		if !c.Tickets.ContainsID(tu.TicketID) {
			return referentialIntegrityError("Ticket", tu.TicketID)
		}
	}
	for _, tup := range c.TicketUsePerimeters {
		if !c.TicketUses.ContainsID(tup.TicketUseID) {
			return referentialIntegrityError("TicketUse", tup.TicketUseID)
		}
	}
	return nil
}

func (m *Model) buildBaseRelations() {
	c := m.collections

	lineIdxs := idsToIdxs(c.Lines)
	m.networkLine = relations.BuildOneToMany[Network, Line](lineIdxs, func(idx collection.Idx[Line]) (collection.Idx[Network], bool) {
		return c.Networks.GetIdx(c.Lines.Index(idx).NetworkID)
	})
	m.commercialModeLine = relations.BuildOneToMany[CommercialMode, Line](lineIdxs, func(idx collection.Idx[Line]) (collection.Idx[CommercialMode], bool) {
		return c.CommercialModes.GetIdx(c.Lines.Index(idx).CommercialModeID)
	})

	routeIdxs := idsToIdxs(c.Routes)
	m.lineRoute = relations.BuildOneToMany[Line, Route](routeIdxs, func(idx collection.Idx[Route]) (collection.Idx[Line], bool) {
		return c.Lines.GetIdx(c.Routes.Index(idx).LineID)
	})

	vjIdxs := idsToIdxs(c.VehicleJourneys)
	m.routeVJ = relations.BuildOneToMany[Route, VehicleJourney](vjIdxs, func(idx collection.Idx[VehicleJourney]) (collection.Idx[Route], bool) {
		return c.Routes.GetIdx(c.VehicleJourneys.Index(idx).RouteID)
	})
	m.physicalModeVJ = relations.BuildOneToMany[PhysicalMode, VehicleJourney](vjIdxs, func(idx collection.Idx[VehicleJourney]) (collection.Idx[PhysicalMode], bool) {
		return c.PhysicalModes.GetIdx(c.VehicleJourneys.Index(idx).PhysicalModeID)
	})
	m.datasetVJ = relations.BuildOneToMany[Dataset, VehicleJourney](vjIdxs, func(idx collection.Idx[VehicleJourney]) (collection.Idx[Dataset], bool) {
		return c.Datasets.GetIdx(c.VehicleJourneys.Index(idx).DatasetID)
	})
	m.companyVJ = relations.BuildOneToMany[Company, VehicleJourney](vjIdxs, func(idx collection.Idx[VehicleJourney]) (collection.Idx[Company], bool) {
		return c.Companies.GetIdx(c.VehicleJourneys.Index(idx).CompanyID)
	})

	datasetIdxs := idsToIdxs(c.Datasets)
	m.contributorDataset = relations.BuildOneToMany[Contributor, Dataset](datasetIdxs, func(idx collection.Idx[Dataset]) (collection.Idx[Contributor], bool) {
		return c.Contributors.GetIdx(c.Datasets.Index(idx).ContributorID)
	})

	stopPointIdxs := idsToIdxs(c.StopPoints)
	m.stopAreaStopPoint = relations.BuildOneToMany[StopArea, StopPoint](stopPointIdxs, func(idx collection.Idx[StopPoint]) (collection.Idx[StopArea], bool) {
		return c.StopAreas.GetIdx(c.StopPoints.Index(idx).StopAreaID)
	})

	m.vjStopPoints = relations.NewManyToMany[VehicleJourney, StopPoint]()
	for _, vj := range vjIdxs {
		for _, st := range c.VehicleJourneys.Index(vj).StopTimes {
			m.vjStopPoints.Add(vj, st.StopPointIdx)
		}
	}
}

func (m *Model) buildGraph() {
	g := relations.NewGraph()

	g.AddRelation(kindNetwork, kindLine, 1.0, rawOf(m.networkLine.Forward), rawOf(m.networkLine.Backward))
	g.AddRelation(kindCommercialMode, kindLine, 1.0, rawOf(m.commercialModeLine.Forward), rawOf(m.commercialModeLine.Backward))
	g.AddRelation(kindLine, kindRoute, 1.0, rawOf(m.lineRoute.Forward), rawOf(m.lineRoute.Backward))
	g.AddRelation(kindRoute, kindVehicleJourney, 1.0, rawOf(m.routeVJ.Forward), rawOf(m.routeVJ.Backward))
	g.AddRelation(kindPhysicalMode, kindVehicleJourney, 1.0, rawOf(m.physicalModeVJ.Forward), rawOf(m.physicalModeVJ.Backward))
	g.AddRelation(kindDataset, kindVehicleJourney, 1.0, rawOf(m.datasetVJ.Forward), rawOf(m.datasetVJ.Backward))
	g.AddRelation(kindCompany, kindVehicleJourney, 1.0, rawOf(m.companyVJ.Forward), rawOf(m.companyVJ.Backward))
	g.AddRelation(kindContributor, kindDataset, 1.0, rawOf(m.contributorDataset.Forward), rawOf(m.contributorDataset.Backward))
	g.AddRelation(kindStopArea, kindStopPoint, 1.0, rawOf(m.stopAreaStopPoint.Forward), rawOf(m.stopAreaStopPoint.Backward))
	g.AddRelation(kindVehicleJourney, kindStopPoint, 1.0, rawOf(m.vjStopPoints.Forward), rawOf(m.vjStopPoints.Backward))

	// Shortcuts (weight 1.9): precomputed by composing the base relations
	// above, chain- or sink-style, per spec.
	routeStopPoints := relations.Materialize(idsToIdxs(m.collections.Routes),
		relations.Chain(m.routeVJ.Forward, m.vjStopPoints.Forward))
	modeStopPoints := relations.Materialize(idsToIdxs(m.collections.PhysicalModes),
		relations.Chain(m.physicalModeVJ.Forward, m.vjStopPoints.Forward))
	modeRoutes := relations.Materialize(idsToIdxs(m.collections.PhysicalModes),
		relations.Chain(m.physicalModeVJ.Forward, m.routeVJ.Backward))
	datasetStopPoints := relations.Materialize(idsToIdxs(m.collections.Datasets),
		relations.Chain(m.datasetVJ.Forward, m.vjStopPoints.Forward))
	datasetRoutes := relations.Materialize(idsToIdxs(m.collections.Datasets),
		relations.Chain(m.datasetVJ.Forward, m.routeVJ.Backward))
	datasetModes := relations.Materialize(idsToIdxs(m.collections.Datasets),
		relations.Chain(m.datasetVJ.Forward, m.physicalModeVJ.Backward))

	g.AddRelation(kindRoute, kindStopPoint, 1.9, rawOf(routeStopPoints.Forward), rawOf(routeStopPoints.Backward))
	g.AddRelation(kindPhysicalMode, kindStopPoint, 1.9, rawOf(modeStopPoints.Forward), rawOf(modeStopPoints.Backward))
	g.AddRelation(kindPhysicalMode, kindRoute, 1.9, rawOf(modeRoutes.Forward), rawOf(modeRoutes.Backward))
	g.AddRelation(kindDataset, kindStopPoint, 1.9, rawOf(datasetStopPoints.Forward), rawOf(datasetStopPoints.Backward))
	g.AddRelation(kindDataset, kindRoute, 1.9, rawOf(datasetRoutes.Forward), rawOf(datasetRoutes.Backward))
	g.AddRelation(kindDataset, kindPhysicalMode, 1.9, rawOf(datasetModes.Forward), rawOf(datasetModes.Backward))

	m.graph = g
}

// GetCorresponding walks the relation graph from T to U along the shortest
// weighted path and returns the corresponding handles. T == U returns the
// input set unchanged.
func GetCorresponding[T kindTagged, U kindTagged](m *Model, from relations.IdxSet[T]) relations.IdxSet[U] {
	return relations.GetCorresponding[T, U](m.graph, kindOf[T](), kindOf[U](), from)
}

// GetCorrespondingFromIdx is GetCorresponding for a single handle.
func GetCorrespondingFromIdx[T kindTagged, U kindTagged](m *Model, from collection.Idx[T]) relations.IdxSet[U] {
	return GetCorresponding[T, U](m, relations.NewIdxSet(from))
}

// rawOf adapts a typed set-to-set function (a OneToMany/ManyToMany Forward
// or Backward method value, or a relations.Chain composition) to the
// Graph's type-erased raw-bitmap closure shape. A and B are inferred from
// whichever function is passed, so the same helper serves both directions.
func rawOf[A, B any](f func(relations.IdxSet[A]) relations.IdxSet[B]) func(*roaring.Bitmap) *roaring.Bitmap {
	return func(b *roaring.Bitmap) *roaring.Bitmap {
		return f(relations.FromRaw[A](b)).Raw()
	}
}

func idsToIdxs[T collection.Identifier](c *collection.CollectionWithId[T]) []collection.Idx[T] {
	pairs := c.Iter()
	out := make([]collection.Idx[T], len(pairs))
	for i, p := range pairs {
		out[i] = p.Idx
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
