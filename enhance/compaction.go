package enhance

import "github.com/transitmodel/transit-model/model"

// Compact shrinks the backing storage of every CollectionWithId, of
// Transfers, and of each vehicle journey's StopTimes to fit their current
// contents. TicketUsePerimeters, TicketPrices and the three StopTime
// side-table maps are left as they are. Pure capacity hygiene, run once
// after all rewrites.
func Compact(c *model.Collections) {
	c.Contributors.ShrinkToFit()
	c.Datasets.ShrinkToFit()
	c.Networks.ShrinkToFit()
	c.Companies.ShrinkToFit()
	c.CommercialModes.ShrinkToFit()
	c.PhysicalModes.ShrinkToFit()
	c.Lines.ShrinkToFit()
	c.Routes.ShrinkToFit()
	c.VehicleJourneys.ShrinkToFit()
	c.StopAreas.ShrinkToFit()
	c.StopPoints.ShrinkToFit()
	c.Calendars.ShrinkToFit()
	c.TripProperties.ShrinkToFit()
	c.Equipments.ShrinkToFit()
	c.Geometries.ShrinkToFit()
	c.Comments.ShrinkToFit()
	c.Tickets.ShrinkToFit()
	c.TicketUses.ShrinkToFit()
	c.Transfers.ShrinkToFit()

	vjs := c.VehicleJourneys.ValuesMut()
	for i := range vjs {
		if cap(vjs[i].StopTimes) > len(vjs[i].StopTimes) {
			shrunk := make([]model.StopTime, len(vjs[i].StopTimes))
			copy(shrunk, vjs[i].StopTimes)
			vjs[i].StopTimes = shrunk
		}
	}
}
