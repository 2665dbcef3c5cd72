package model

// TryMerge appends other's contents into c, field by field, failing on the
// first ID collision in any ID-indexed collection. c is left partially
// merged on failure; callers that need atomicity should operate on a copy.
func (c *Collections) TryMerge(other *Collections) error {
	if err := c.Contributors.TryMerge(other.Contributors); err != nil {
		return err
	}
	if err := c.Datasets.TryMerge(other.Datasets); err != nil {
		return err
	}
	if err := c.Networks.TryMerge(other.Networks); err != nil {
		return err
	}
	if err := c.Companies.TryMerge(other.Companies); err != nil {
		return err
	}
	if err := c.CommercialModes.TryMerge(other.CommercialModes); err != nil {
		return err
	}
	if err := c.PhysicalModes.TryMerge(other.PhysicalModes); err != nil {
		return err
	}
	if err := c.Lines.TryMerge(other.Lines); err != nil {
		return err
	}
	if err := c.Routes.TryMerge(other.Routes); err != nil {
		return err
	}
	if err := c.VehicleJourneys.TryMerge(other.VehicleJourneys); err != nil {
		return err
	}
	if err := c.StopAreas.TryMerge(other.StopAreas); err != nil {
		return err
	}
	if err := c.StopPoints.TryMerge(other.StopPoints); err != nil {
		return err
	}
	if err := c.Calendars.TryMerge(other.Calendars); err != nil {
		return err
	}
	if err := c.TripProperties.TryMerge(other.TripProperties); err != nil {
		return err
	}
	if err := c.Equipments.TryMerge(other.Equipments); err != nil {
		return err
	}
	if err := c.Geometries.TryMerge(other.Geometries); err != nil {
		return err
	}
	if err := c.Comments.TryMerge(other.Comments); err != nil {
		return err
	}
	if err := c.Tickets.TryMerge(other.Tickets); err != nil {
		return err
	}
	if err := c.TicketUses.TryMerge(other.TicketUses); err != nil {
		return err
	}

	c.Transfers.Merge(other.Transfers)
	c.TicketUsePerimeters = append(c.TicketUsePerimeters, other.TicketUsePerimeters...)
	c.TicketPrices = append(c.TicketPrices, other.TicketPrices...)
	for k, v := range other.StopTimeHeadsigns {
		c.StopTimeHeadsigns[k] = v
	}
	for k, v := range other.StopTimeIDs {
		c.StopTimeIDs[k] = v
	}
	for k, v := range other.StopTimeComments {
		c.StopTimeComments[k] = v
	}
	for k, v := range other.FeedInfos {
		c.FeedInfos[k] = v
	}
	return nil
}

// Merge is TryMerge's best-effort sibling: colliding entities in any
// ID-indexed collection are dropped instead of aborting the whole merge.
// Transfers, side-tables and FeedInfos have no ID to collide on, so they
// merge unconditionally (FeedInfos keys last-wins, matching the teacher's
// "merge metadata, last one read wins" convention).
func (c *Collections) Merge(other *Collections) {
	c.Contributors.Merge(other.Contributors)
	c.Datasets.Merge(other.Datasets)
	c.Networks.Merge(other.Networks)
	c.Companies.Merge(other.Companies)
	c.CommercialModes.Merge(other.CommercialModes)
	c.PhysicalModes.Merge(other.PhysicalModes)
	c.Lines.Merge(other.Lines)
	c.Routes.Merge(other.Routes)
	c.VehicleJourneys.Merge(other.VehicleJourneys)
	c.StopAreas.Merge(other.StopAreas)
	c.StopPoints.Merge(other.StopPoints)
	c.Calendars.Merge(other.Calendars)
	c.TripProperties.Merge(other.TripProperties)
	c.Equipments.Merge(other.Equipments)
	c.Geometries.Merge(other.Geometries)
	c.Comments.Merge(other.Comments)
	c.Tickets.Merge(other.Tickets)
	c.TicketUses.Merge(other.TicketUses)

	c.Transfers.Merge(other.Transfers)
	c.TicketUsePerimeters = append(c.TicketUsePerimeters, other.TicketUsePerimeters...)
	c.TicketPrices = append(c.TicketPrices, other.TicketPrices...)
	for k, v := range other.StopTimeHeadsigns {
		c.StopTimeHeadsigns[k] = v
	}
	for k, v := range other.StopTimeIDs {
		c.StopTimeIDs[k] = v
	}
	for k, v := range other.StopTimeComments {
		c.StopTimeComments[k] = v
	}
	for k, v := range other.FeedInfos {
		c.FeedInfos[k] = v
	}
}
