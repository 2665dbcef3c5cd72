package enhance

import (
	"github.com/transitmodel/transit-model/collection"
	"github.com/transitmodel/transit-model/model"
)

// InferPickupDropoff applies the default "no drop-off at the first stop, no
// pickup at the last stop" rule to every vehicle journey, except where a
// stay-in relationship with a preceding/following journey (same block_id)
// says otherwise. Route-point stops (pickup and drop-off both 3) are never
// touched by the default rule, and explicit non-default pickup/drop-off
// values already present are always preserved.
func InferPickupDropoff(c *model.Collections) {
	byBlock := map[string][]collection.Idx[model.VehicleJourney]{}
	pairs := c.VehicleJourneys.Iter()
	for _, p := range pairs {
		if p.Value.BlockID != nil && *p.Value.BlockID != "" {
			byBlock[*p.Value.BlockID] = append(byBlock[*p.Value.BlockID], p.Idx)
		}
	}

	// hasNext[a] marks a as the departing half of some stay-in pair;
	// isNext[b] marks b as the continuing half.
	hasNext := map[string]bool{}
	isNext := map[string]bool{}
	for _, group := range byBlock {
		for _, ai := range group {
			for _, bi := range group {
				if ai == bi {
					continue
				}
				a := c.VehicleJourneys.Index(ai)
				b := c.VehicleJourneys.Index(bi)
				if isStayIn(c, a, b) {
					hasNext[a.ID()] = true
					isNext[b.ID()] = true
				}
			}
		}
	}

	for _, p := range pairs {
		vj := p.Value
		if len(vj.StopTimes) == 0 {
			continue
		}
		applyDefaultDropOff(vj, isNext[vj.ID()])
		applyDefaultPickup(vj, hasNext[vj.ID()])
	}
}

// applyDefaultDropOff forbids drop-off at the first non-route-point stop,
// unless this journey is the continuing half of a stay-in.
func applyDefaultDropOff(vj *model.VehicleJourney, suppressedByStayIn bool) {
	for i := range vj.StopTimes {
		st := &vj.StopTimes[i]
		if st.IsRoutePoint() {
			continue
		}
		if st.DropOffType == model.PickupDropoffRegular && !suppressedByStayIn {
			st.DropOffType = model.PickupDropoffNone
		}
		break
	}
}

// applyDefaultPickup forbids pickup at the last non-route-point stop, unless
// this journey is the departing half of a stay-in.
func applyDefaultPickup(vj *model.VehicleJourney, suppressedByStayIn bool) {
	for i := len(vj.StopTimes) - 1; i >= 0; i-- {
		st := &vj.StopTimes[i]
		if st.IsRoutePoint() {
			continue
		}
		if st.PickupType == model.PickupDropoffRegular && !suppressedByStayIn {
			st.PickupType = model.PickupDropoffNone
		}
		break
	}
}

// isStayIn reports whether b is the stay-in continuation of a: different
// stop points at the touching ends, no time overlap, neither touching stop
// is a route point, and the two journeys' calendars share at least one
// operating date.
func isStayIn(c *model.Collections, a, b *model.VehicleJourney) bool {
	if len(a.StopTimes) == 0 || len(b.StopTimes) == 0 {
		return false
	}
	aLast := a.StopTimes[len(a.StopTimes)-1]
	bFirst := b.StopTimes[0]

	if aLast.StopPointIdx == bFirst.StopPointIdx {
		return false
	}
	if aLast.DepartureTime > bFirst.ArrivalTime {
		return false
	}
	if aLast.IsRoutePoint() || bFirst.IsRoutePoint() {
		return false
	}

	aCal, ok := c.Calendars.Get(a.ServiceID)
	if !ok {
		return false
	}
	bCal, ok := c.Calendars.Get(b.ServiceID)
	if !ok {
		return false
	}
	return aCal.Overlaps(*bCal)
}
