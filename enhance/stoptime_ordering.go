// Package enhance implements the consistency/enhancement pipeline: stop-time
// ordering validation, pickup/drop-off inference across stay-in chains,
// route-point ordering, and post-rewrite memory compaction.
package enhance

import (
	"sort"

	"go.uber.org/zap"

	"github.com/transitmodel/transit-model/collection"
	"github.com/transitmodel/transit-model/logging"
	"github.com/transitmodel/transit-model/model"
)

// OrderStopTimes sorts every vehicle journey's stop times by sequence and
// drops journeys whose arrival/departure times are not monotonic. Survivors
// replace c.VehicleJourneys; dropped journeys are logged as warnings, never
// silently discarded.
func OrderStopTimes(c *model.Collections) {
	pairs := c.VehicleJourneys.Iter()
	survivors := make([]model.VehicleJourney, 0, len(pairs))

	for _, p := range pairs {
		vj := *p.Value
		sort.Slice(vj.StopTimes, func(i, j int) bool {
			return vj.StopTimes[i].Sequence < vj.StopTimes[j].Sequence
		})

		if !stopTimesMonotonic(vj.StopTimes) {
			logging.L().Warnw("dropping vehicle journey with non-monotonic stop times",
				zap.String("vehicle_journey_id", vj.ID()))
			continue
		}

		survivors = append(survivors, vj)
	}

	rebuilt, err := collection.NewWithId(survivors)
	if err != nil {
		// survivors came from a collection that already enforced unique IDs;
		// this can only happen if two journeys that both survived share an
		// ID, which Model.New's prior validation already precludes.
		panic(err)
	}
	c.VehicleJourneys = rebuilt
}

func stopTimesMonotonic(sts []model.StopTime) bool {
	for i, st := range sts {
		if st.ArrivalTime > st.DepartureTime {
			return false
		}
		if i > 0 && sts[i-1].DepartureTime > st.ArrivalTime {
			return false
		}
	}
	return true
}
