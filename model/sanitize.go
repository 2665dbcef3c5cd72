package model

import "github.com/transitmodel/transit-model/collection"

type vjIdx = collection.Idx[VehicleJourney]

// remapStopTimeKeys rebuilds a StopTimeKey-keyed map after VehicleJourneys
// has been retained: entries belonging to a dropped vehicle journey are
// discarded, survivors are re-keyed with their (possibly shifted) new Idx.
func remapStopTimeKeys(m map[StopTimeKey]string, oldIdxToID map[vjIdx]string, vjs *collection.CollectionWithId[VehicleJourney]) map[StopTimeKey]string {
	out := make(map[StopTimeKey]string, len(m))
	for key, v := range m {
		id, ok := oldIdxToID[key.VehicleJourney]
		if !ok {
			continue
		}
		newIdx, ok := vjs.GetIdx(id)
		if !ok {
			continue
		}
		out[StopTimeKey{VehicleJourney: newIdx, Sequence: key.Sequence}] = v
	}
	return out
}

func remapStopTimeSliceKeys(m map[StopTimeKey][]string, oldIdxToID map[vjIdx]string, vjs *collection.CollectionWithId[VehicleJourney]) map[StopTimeKey][]string {
	out := make(map[StopTimeKey][]string, len(m))
	for key, v := range m {
		id, ok := oldIdxToID[key.VehicleJourney]
		if !ok {
			continue
		}
		newIdx, ok := vjs.GetIdx(id)
		if !ok {
			continue
		}
		out[StopTimeKey{VehicleJourney: newIdx, Sequence: key.Sequence}] = v
	}
	return out
}

// Sanitize purges every entity unreachable from a vehicle journey running on
// a calendar with at least one operating date. It walks the reference graph
// outward from live vehicle journeys (route, company, dataset, physical
// mode, stop points, trip property, geometry, comments), then from each kind
// of surviving entity to whatever it references in turn, and finally drops
// everything not visited. Idempotent: a second call finds nothing new to
// drop.
func (c *Collections) Sanitize() {
	stopIDsByVJ := make(map[string][]string, c.VehicleJourneys.Len())
	for _, vj := range c.VehicleJourneys.Values() {
		ids := make([]string, len(vj.StopTimes))
		for i, st := range vj.StopTimes {
			ids[i] = c.StopPoints.Index(st.StopPointIdx).ID()
		}
		stopIDsByVJ[vj.ID()] = ids
	}
	oldVJIdxToID := make(map[vjIdx]string, c.VehicleJourneys.Len())
	for _, p := range c.VehicleJourneys.Iter() {
		oldVJIdxToID[p.Idx] = p.Value.ID()
	}

	c.Calendars.Retain(func(cal *Calendar) bool { return len(cal.Dates) > 0 })

	routeIDs := map[string]struct{}{}
	companyIDs := map[string]struct{}{}
	datasetIDs := map[string]struct{}{}
	physicalModeIDs := map[string]struct{}{}
	tripPropertyIDs := map[string]struct{}{}
	geometryIDs := map[string]struct{}{}
	commentIDs := map[string]struct{}{}
	stopPointIDs := map[string]struct{}{}
	vjKeepIDs := map[string]struct{}{}

	for _, vj := range c.VehicleJourneys.Values() {
		if !c.Calendars.ContainsID(vj.ServiceID) {
			continue
		}
		vjKeepIDs[vj.ID()] = struct{}{}
		routeIDs[vj.RouteID] = struct{}{}
		companyIDs[vj.CompanyID] = struct{}{}
		datasetIDs[vj.DatasetID] = struct{}{}
		physicalModeIDs[vj.PhysicalModeID] = struct{}{}
		if vj.TripPropertyID != nil {
			tripPropertyIDs[*vj.TripPropertyID] = struct{}{}
		}
		if vj.GeometryID != nil {
			geometryIDs[*vj.GeometryID] = struct{}{}
		}
		for _, cid := range vj.CommentLinksF {
			commentIDs[cid] = struct{}{}
		}
		for _, id := range stopIDsByVJ[vj.ID()] {
			stopPointIDs[id] = struct{}{}
		}
	}
	c.VehicleJourneys.Retain(func(vj *VehicleJourney) bool {
		_, ok := vjKeepIDs[vj.ID()]
		return ok
	})

	lineIDs := map[string]struct{}{}
	for _, r := range c.Routes.Values() {
		if _, ok := routeIDs[r.ID()]; !ok {
			continue
		}
		lineIDs[r.LineID] = struct{}{}
		if r.GeometryID != nil {
			geometryIDs[*r.GeometryID] = struct{}{}
		}
		for _, cid := range r.CommentLinksF {
			commentIDs[cid] = struct{}{}
		}
	}
	c.Routes.Retain(func(r *Route) bool { _, ok := routeIDs[r.ID()]; return ok })

	stopAreaIDs := map[string]struct{}{}
	equipmentIDs := map[string]struct{}{}
	for _, sp := range c.StopPoints.Values() {
		if _, ok := stopPointIDs[sp.ID()]; !ok {
			continue
		}
		stopAreaIDs[sp.StopAreaID] = struct{}{}
		if sp.EquipmentID != nil {
			equipmentIDs[*sp.EquipmentID] = struct{}{}
		}
		for _, cid := range sp.CommentLinksF {
			commentIDs[cid] = struct{}{}
		}
	}
	c.StopPoints.Retain(func(sp *StopPoint) bool { _, ok := stopPointIDs[sp.ID()]; return ok })

	networkIDs := map[string]struct{}{}
	commercialModeIDs := map[string]struct{}{}
	for _, l := range c.Lines.Values() {
		if _, ok := lineIDs[l.ID()]; !ok {
			continue
		}
		networkIDs[l.NetworkID] = struct{}{}
		commercialModeIDs[l.CommercialModeID] = struct{}{}
		if l.GeometryID != nil {
			geometryIDs[*l.GeometryID] = struct{}{}
		}
		for _, cid := range l.CommentLinksF {
			commentIDs[cid] = struct{}{}
		}
	}
	c.Lines.Retain(func(l *Line) bool { _, ok := lineIDs[l.ID()]; return ok })

	contributorIDs := map[string]struct{}{}
	for _, d := range c.Datasets.Values() {
		if _, ok := datasetIDs[d.ID()]; !ok {
			continue
		}
		contributorIDs[d.ContributorID] = struct{}{}
	}
	c.Datasets.Retain(func(d *Dataset) bool { _, ok := datasetIDs[d.ID()]; return ok })

	for _, sa := range c.StopAreas.Values() {
		if _, ok := stopAreaIDs[sa.ID()]; !ok {
			continue
		}
		if sa.GeometryID != nil {
			geometryIDs[*sa.GeometryID] = struct{}{}
		}
		if sa.EquipmentID != nil {
			equipmentIDs[*sa.EquipmentID] = struct{}{}
		}
		for _, cid := range sa.CommentLinksF {
			commentIDs[cid] = struct{}{}
		}
	}

	c.Contributors.Retain(func(ct *Contributor) bool { _, ok := contributorIDs[ct.ID()]; return ok })
	c.Companies.Retain(func(cp *Company) bool { _, ok := companyIDs[cp.ID()]; return ok })
	c.PhysicalModes.Retain(func(pm *PhysicalMode) bool { _, ok := physicalModeIDs[pm.ID()]; return ok })
	c.CommercialModes.Retain(func(cm *CommercialMode) bool { _, ok := commercialModeIDs[cm.ID()]; return ok })
	c.Networks.Retain(func(n *Network) bool { _, ok := networkIDs[n.ID()]; return ok })
	c.TripProperties.Retain(func(tp *TripProperty) bool { _, ok := tripPropertyIDs[tp.ID()]; return ok })
	c.Geometries.Retain(func(g *Geometry) bool { _, ok := geometryIDs[g.ID()]; return ok })
	c.Comments.Retain(func(cm *Comment) bool { _, ok := commentIDs[cm.ID()]; return ok })
	c.StopAreas.Retain(func(sa *StopArea) bool { _, ok := stopAreaIDs[sa.ID()]; return ok })
	c.Equipments.Retain(func(e *Equipment) bool { _, ok := equipmentIDs[e.ID()]; return ok })

	c.Transfers.Retain(func(t *Transfer) bool {
		_, fromOK := stopPointIDs[t.FromStopID]
		_, toOK := stopPointIDs[t.ToStopID]
		return fromOK && toOK
	})

	// Fix up the StopPointIdx handles embedded in every surviving vehicle
	// journey's stop times: StopPoints.Retain above compacted the
	// collection, so every previously valid Idx may now point at the wrong
	// slot or past the end.
	vjs := c.VehicleJourneys.ValuesMut()
	for i := range vjs {
		ids := stopIDsByVJ[vjs[i].ID()]
		for j := range vjs[i].StopTimes {
			newIdx, _ := c.StopPoints.GetIdx(ids[j])
			vjs[i].StopTimes[j].StopPointIdx = newIdx
		}
	}

	c.StopTimeHeadsigns = remapStopTimeKeys(c.StopTimeHeadsigns, oldVJIdxToID, c.VehicleJourneys)
	c.StopTimeIDs = remapStopTimeKeys(c.StopTimeIDs, oldVJIdxToID, c.VehicleJourneys)
	c.StopTimeComments = remapStopTimeSliceKeys(c.StopTimeComments, oldVJIdxToID, c.VehicleJourneys)
}
