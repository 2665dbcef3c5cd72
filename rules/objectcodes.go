package rules

import "github.com/transitmodel/transit-model/model"

// ObjectCodeRow is one row of the object-code tabular rule format:
// (object_kind, object_id, system, code).
type ObjectCodeRow struct {
	ObjectType model.ObjectType `csv:"object_type"`
	ObjectID   string           `csv:"object_id"`
	System     string           `csv:"object_system"`
	Code       string           `csv:"object_code"`
}

// ApplyObjectCodes inserts (system, code) into the codes set of every row's
// target entity. Unknown targets emit ObjectNotFound; duplicate (system,
// code) insertions are idempotent: Codes is a plain slice, not a set, so
// insertCode checks for an existing pair before appending.
func ApplyObjectCodes(c *model.Collections, rows []ObjectCodeRow, report *Report) {
	for _, row := range rows {
		var codes *model.CodesT
		switch row.ObjectType {
		case model.ObjectLine:
			if l := c.Lines.GetMut(row.ObjectID); l != nil {
				codes = l.Value().Codes()
				l.Release()
			}
		case model.ObjectRoute:
			if r := c.Routes.GetMut(row.ObjectID); r != nil {
				codes = r.Value().Codes()
				r.Release()
			}
		case model.ObjectStopPoint:
			if sp := c.StopPoints.GetMut(row.ObjectID); sp != nil {
				codes = sp.Value().Codes()
				sp.Release()
			}
		case model.ObjectStopArea:
			if sa := c.StopAreas.GetMut(row.ObjectID); sa != nil {
				codes = sa.Value().Codes()
				sa.Release()
			}
		}
		if codes == nil {
			report.warning(ObjectNotFound, "object_type=%s, object_id=%s: object not found", row.ObjectType, row.ObjectID)
			continue
		}
		insertCode(codes, row.System, row.Code)
	}
}

func insertCode(codes *model.CodesT, system, code string) {
	for _, existing := range *codes {
		if existing.System == system && existing.Code == code {
			return
		}
	}
	*codes = append(*codes, model.Code{System: system, Code: code})
}
