package model

// RestrictPeriod clips every Calendar's operating dates to the inclusive
// [start, end] interval and resets every Dataset's validity window to those
// same bounds. It does not drop any entity; pair with Sanitize to also purge
// calendars left with an empty date set.
func (c *Collections) RestrictPeriod(start, end Date) {
	calendars := c.Calendars.ValuesMut()
	for i := range calendars {
		calendars[i].Dates = calendars[i].Dates.Restrict(start, end)
	}

	datasets := c.Datasets.ValuesMut()
	for i := range datasets {
		datasets[i].StartDate = start
		datasets[i].EndDate = end
	}
}
