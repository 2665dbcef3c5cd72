package enhance

import "github.com/transitmodel/transit-model/model"

// PurgeDanglingCommentLinks drops every CommentLinks reference whose target
// Comment no longer exists. Supplements the four spec-named enhancers: it is
// a direct consequence of rule application or sanitise removing Comments,
// not an independent pass over freshly-loaded data.
func PurgeDanglingCommentLinks(c *model.Collections) {
	purge := func(links *[]string) {
		kept := (*links)[:0]
		for _, id := range *links {
			if c.Comments.ContainsID(id) {
				kept = append(kept, id)
			}
		}
		*links = kept
	}

	lines := c.Lines.ValuesMut()
	for i := range lines {
		purge(lines[i].CommentLinks())
	}
	routes := c.Routes.ValuesMut()
	for i := range routes {
		purge(routes[i].CommentLinks())
	}
	stopAreas := c.StopAreas.ValuesMut()
	for i := range stopAreas {
		purge(stopAreas[i].CommentLinks())
	}
	stopPoints := c.StopPoints.ValuesMut()
	for i := range stopPoints {
		purge(stopPoints[i].CommentLinks())
	}
	vjs := c.VehicleJourneys.ValuesMut()
	for i := range vjs {
		purge(vjs[i].CommentLinks())
	}
}
