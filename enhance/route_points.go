package enhance

import (
	"github.com/transitmodel/transit-model/collection"
	"github.com/transitmodel/transit-model/model"
)

// RoutePointOrder is the canonical, merged stop-point sequence for a route:
// every vehicle journey on the route has a stop sequence that is a
// subsequence of this list.
type RoutePointOrder []collection.Idx[model.StopPoint]

// MergeRoutePoints folds every vehicle journey's stop sequence into a single
// canonical list such that each input sequence remains a subsequence of the
// result. Journeys are folded in the order given (typically declaration
// order), and the algorithm is idempotent: feeding the result back in as a
// single journey reproduces it unchanged.
func MergeRoutePoints(journeys [][]collection.Idx[model.StopPoint]) RoutePointOrder {
	var canonical RoutePointOrder
	for _, stops := range journeys {
		canonical = mergeOne(canonical, stops)
	}
	return canonical
}

func mergeOne(canonical RoutePointOrder, stops []collection.Idx[model.StopPoint]) RoutePointOrder {
	remaining := append([]collection.Idx[model.StopPoint]{}, stops...)

	var out RoutePointOrder
	for _, entry := range canonical {
		if i := indexOf(remaining, entry); i >= 0 {
			// flush the prefix of remaining up to and including entry
			out = append(out, remaining[:i+1]...)
			remaining = remaining[i+1:]
		} else {
			out = append(out, entry)
		}
	}
	out = append(out, remaining...)
	return out
}

func indexOf(s []collection.Idx[model.StopPoint], v collection.Idx[model.StopPoint]) int {
	for i, e := range s {
		if e == v {
			return i
		}
	}
	return -1
}
