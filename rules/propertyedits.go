package rules

import (
	"fmt"
	"strconv"

	"github.com/transitmodel/transit-model/geometry"
	"github.com/transitmodel/transit-model/model"
)

// PropertyEditRow is one row of the property-edit tabular rule format.
type PropertyEditRow struct {
	ObjectType   model.ObjectType `csv:"object_type"`
	ObjectID     string           `csv:"object_id"`
	PropertyName string           `csv:"property_name"`
	OldValue     *string          `csv:"property_old_value"`
	NewValue     string           `csv:"property_value"`
}

type propertyKey struct {
	objectType model.ObjectType
	objectID   string
	property   string
}

// ApplyPropertyEdits dispatches each row to a named updater for its
// (object_type, property_name) pair. Rows targeting the same
// (kind, id, property) collapse to one; disagreeing rows are all skipped
// with MultipleValue.
func ApplyPropertyEdits(c *model.Collections, rows []PropertyEditRow, report *Report) {
	byKey := map[propertyKey][]PropertyEditRow{}
	order := []propertyKey{}
	for _, row := range rows {
		if IsEquipmentProperty(row.ObjectType, row.PropertyName) || IsTripProperty(row.ObjectType, row.PropertyName) {
			continue // routed to ApplyEquipmentEdits/ApplyTripPropertyEdits instead
		}
		key := propertyKey{row.ObjectType, row.ObjectID, row.PropertyName}
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], row)
	}

	for _, key := range order {
		group := byKey[key]
		row := group[0]
		agree := true
		for _, other := range group[1:] {
			if other.NewValue != row.NewValue || !sameOldValue(other.OldValue, row.OldValue) {
				agree = false
				break
			}
		}
		if !agree {
			report.warning(MultipleValue, "object_type=%s, object_id=%s: multiple values specified for the property %s",
				key.objectType, key.objectID, key.property)
			continue
		}
		applyOne(c, row, report)
	}
}

func sameOldValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func applyOne(c *model.Collections, row PropertyEditRow, report *Report) {
	h, ok := lookupHandler(row.ObjectType, row.PropertyName)
	if !ok {
		report.warning(UnknownPropertyName, "object_type=%s, object_id=%s: unknown property_name %s defined",
			row.ObjectType, row.ObjectID, row.PropertyName)
		return
	}

	current, exists := h.get(c, row.ObjectID)
	if !exists {
		report.warning(ObjectNotFound, "object_type=%s, object_id=%s: object not found", row.ObjectType, row.ObjectID)
		return
	}

	if !h.ownOldValueCheck && row.OldValue != nil && *row.OldValue != "*" && *row.OldValue != current {
		report.warning(OldPropertyValueDoesNotMatch,
			"object_type=%s, object_id=%s, property_name=%s: property_old_value does not match the value found in the data",
			row.ObjectType, row.ObjectID, row.PropertyName)
		return
	}

	h.set(c, row, report)
}

// propertyHandler dispatches (kind, property_name) to a getter and setter.
type propertyHandler struct {
	get func(c *model.Collections, id string) (current string, exists bool)
	set func(c *model.Collections, row PropertyEditRow, report *Report)
	// ownOldValueCheck means set matches old_value itself, entity by entity,
	// so applyOne skips its single-value comparison.
	ownOldValueCheck bool
}

func lookupHandler(ot model.ObjectType, property string) (propertyHandler, bool) {
	byProp, ok := propertyHandlers[ot]
	if !ok {
		return propertyHandler{}, false
	}
	h, ok := byProp[property]
	return h, ok
}

var propertyHandlers map[model.ObjectType]map[string]propertyHandler

func init() {
	propertyHandlers = map[model.ObjectType]map[string]propertyHandler{
		model.ObjectLine: {
			"name": {
				get: func(c *model.Collections, id string) (string, bool) {
					l, ok := c.Lines.Get(id)
					if !ok {
						return "", false
					}
					return l.Name, true
				},
				set: func(c *model.Collections, row PropertyEditRow, report *Report) {
					ref := c.Lines.GetMut(row.ObjectID)
					ref.Value().Name = row.NewValue
					ref.Release()
				},
			},
			"geometry_id": geometryHandler(
				func(c *model.Collections, id string) (*string, bool) {
					l, ok := c.Lines.Get(id)
					if !ok {
						return nil, false
					}
					return l.GeometryID, true
				},
				func(c *model.Collections, id, geoID string) {
					ref := c.Lines.GetMut(id)
					ref.Value().GeometryID = &geoID
					ref.Release()
				}),
			"physical_mode_id": {
				get: func(c *model.Collections, id string) (string, bool) {
					_, ok := c.Lines.Get(id)
					return "", ok
				},
				set:              applyLinePhysicalModeEdit,
				ownOldValueCheck: true,
			},
			"sort_order": {
				get: func(c *model.Collections, id string) (string, bool) {
					l, ok := c.Lines.Get(id)
					if !ok {
						return "", false
					}
					if l.SortOrder == nil {
						return "", true
					}
					return strconv.FormatUint(uint64(*l.SortOrder), 10), true
				},
				set: func(c *model.Collections, row PropertyEditRow, report *Report) {
					v, err := parseUint32Field(row.NewValue)
					if err != nil {
						report.warning(NonConvertibleString, "object_type=%s, object_id=%s, property_name=sort_order: %q is not a number",
							row.ObjectType, row.ObjectID, row.NewValue)
						return
					}
					ref := c.Lines.GetMut(row.ObjectID)
					ref.Value().SortOrder = &v
					ref.Release()
				},
			},
		},
		model.ObjectRoute: {
			"name": {
				get: func(c *model.Collections, id string) (string, bool) {
					r, ok := c.Routes.Get(id)
					if !ok {
						return "", false
					}
					return r.Name, true
				},
				set: func(c *model.Collections, row PropertyEditRow, report *Report) {
					ref := c.Routes.GetMut(row.ObjectID)
					ref.Value().Name = row.NewValue
					ref.Release()
				},
			},
			"destination_id": {
				get: func(c *model.Collections, id string) (string, bool) {
					r, ok := c.Routes.Get(id)
					if !ok {
						return "", false
					}
					if r.DestinationID == nil {
						return "", true
					}
					return *r.DestinationID, true
				},
				set: func(c *model.Collections, row PropertyEditRow, report *Report) {
					ref := c.Routes.GetMut(row.ObjectID)
					v := row.NewValue
					ref.Value().DestinationID = &v
					ref.Release()
				},
			},
			"geometry_id": geometryHandler(
				func(c *model.Collections, id string) (*string, bool) {
					r, ok := c.Routes.Get(id)
					if !ok {
						return nil, false
					}
					return r.GeometryID, true
				},
				func(c *model.Collections, id, geoID string) {
					ref := c.Routes.GetMut(id)
					ref.Value().GeometryID = &geoID
					ref.Release()
				}),
		},
		model.ObjectStopPoint: {
			"name": {
				get: func(c *model.Collections, id string) (string, bool) {
					sp, ok := c.StopPoints.Get(id)
					if !ok {
						return "", false
					}
					return sp.Name, true
				},
				set: func(c *model.Collections, row PropertyEditRow, report *Report) {
					ref := c.StopPoints.GetMut(row.ObjectID)
					ref.Value().Name = row.NewValue
					ref.Release()
				},
			},
			"fare_zone_id": {
				get: func(c *model.Collections, id string) (string, bool) {
					sp, ok := c.StopPoints.Get(id)
					if !ok {
						return "", false
					}
					if sp.FareZoneID == nil {
						return "", true
					}
					return *sp.FareZoneID, true
				},
				set: func(c *model.Collections, row PropertyEditRow, report *Report) {
					ref := c.StopPoints.GetMut(row.ObjectID)
					v := row.NewValue
					ref.Value().FareZoneID = &v
					ref.Release()
				},
			},
			"coord": coordHandler(
				func(c *model.Collections, id string) (*model.Coord, bool) {
					sp, ok := c.StopPoints.Get(id)
					if !ok {
						return nil, false
					}
					return &sp.Coord, true
				},
				func(c *model.Collections, id string, coord model.Coord) {
					ref := c.StopPoints.GetMut(id)
					ref.Value().Coord = coord
					ref.Release()
				}),
			"geometry_id": geometryHandler(
				func(c *model.Collections, id string) (*string, bool) {
					sp, ok := c.StopPoints.Get(id)
					if !ok {
						return nil, false
					}
					return sp.GeometryID, true
				},
				func(c *model.Collections, id, geoID string) {
					ref := c.StopPoints.GetMut(id)
					ref.Value().GeometryID = &geoID
					ref.Release()
				}),
		},
		model.ObjectStopArea: {
			"name": {
				get: func(c *model.Collections, id string) (string, bool) {
					sa, ok := c.StopAreas.Get(id)
					if !ok {
						return "", false
					}
					return sa.Name, true
				},
				set: func(c *model.Collections, row PropertyEditRow, report *Report) {
					ref := c.StopAreas.GetMut(row.ObjectID)
					ref.Value().Name = row.NewValue
					ref.Release()
				},
			},
			"coord": coordHandler(
				func(c *model.Collections, id string) (*model.Coord, bool) {
					sa, ok := c.StopAreas.Get(id)
					if !ok {
						return nil, false
					}
					return &sa.Coord, true
				},
				func(c *model.Collections, id string, coord model.Coord) {
					ref := c.StopAreas.GetMut(id)
					ref.Value().Coord = coord
					ref.Release()
				}),
			"geometry_id": geometryHandler(
				func(c *model.Collections, id string) (*string, bool) {
					sa, ok := c.StopAreas.Get(id)
					if !ok {
						return nil, false
					}
					return sa.GeometryID, true
				},
				func(c *model.Collections, id, geoID string) {
					ref := c.StopAreas.GetMut(id)
					ref.Value().GeometryID = &geoID
					ref.Release()
				}),
		},
	}
}

// geometryHandler builds a propertyHandler for a *string GeometryID field:
// the current value reported for old_value comparison is the referenced
// Geometry's own WKT (or "" if unset), and set parses new_value as WKT,
// allocating or reusing a Geometry entity keyed "<kind>:<id>".
func geometryHandler(getID func(*model.Collections, string) (*string, bool), setID func(*model.Collections, string, string)) propertyHandler {
	return propertyHandler{
		get: func(c *model.Collections, id string) (string, bool) {
			geoID, exists := getID(c, id)
			if !exists {
				return "", false
			}
			if geoID == nil {
				return "", true
			}
			g, ok := c.Geometries.Get(*geoID)
			if !ok {
				return "", true
			}
			return g.WKT, true
		},
		set: func(c *model.Collections, row PropertyEditRow, report *Report) {
			shape, err := geometry.ParseWKT(row.NewValue)
			if err != nil {
				report.warning(GeometryNotValid, "object_type=%s, object_id=%s, property_name=%s: %s",
					row.ObjectType, row.ObjectID, row.PropertyName, err)
				return
			}
			geoID := fmt.Sprintf("%s:%s", row.ObjectType, row.ObjectID)
			idx := c.Geometries.GetOrCreate(geoID, func(id string) model.Geometry {
				return model.Geometry{IDField: id}
			})
			ref := c.Geometries.IndexMut(idx)
			ref.Value().WKT = geometry.WriteWKT(shape)
			ref.Release()
			setID(c, row.ObjectID, geoID)
		},
	}
}

// coordHandler builds a propertyHandler for a coordinate field: new_value
// must parse as a WKT POINT, and is applied directly (no Geometry entity is
// allocated for a coordinate field).
func coordHandler(getCoord func(*model.Collections, string) (*model.Coord, bool), setCoord func(*model.Collections, string, model.Coord)) propertyHandler {
	return propertyHandler{
		get: func(c *model.Collections, id string) (string, bool) {
			coord, exists := getCoord(c, id)
			if !exists {
				return "", false
			}
			return geometry.WriteWKT(geometry.Shape{Kind: geometry.ShapeKindPoint, Points: []geometry.Point{{Lat: coord.Lat, Lon: coord.Lon}}}), true
		},
		set: func(c *model.Collections, row PropertyEditRow, report *Report) {
			shape, err := geometry.ParseWKT(row.NewValue)
			if err != nil || shape.Kind != geometry.ShapeKindPoint {
				report.warning(GeometryNotValid, "object_type=%s, object_id=%s, property_name=%s: WKT should be POINT",
					row.ObjectType, row.ObjectID, row.PropertyName)
				return
			}
			p := shape.Points[0]
			setCoord(c, row.ObjectID, model.Coord{Lon: p.Lon, Lat: p.Lat})
		},
	}
}

// applyLinePhysicalModeEdit rewrites physical_mode_id on every VJ of the
// line whose current physical mode matches old_value (or every VJ if "*").
func applyLinePhysicalModeEdit(c *model.Collections, row PropertyEditRow, report *Report) {
	routeIDs := map[string]struct{}{}
	for _, r := range c.Routes.Values() {
		if r.LineID == row.ObjectID {
			routeIDs[r.ID()] = struct{}{}
		}
	}
	if !c.PhysicalModes.ContainsID(row.NewValue) {
		report.warning(ObjectNotFound, "object_type=%s, object_id=%s, property_name=physical_mode_id: physical mode %s not found",
			row.ObjectType, row.ObjectID, row.NewValue)
		return
	}
	vjs := c.VehicleJourneys.ValuesMut()
	old := ""
	if row.OldValue != nil {
		old = *row.OldValue
	}
	for i := range vjs {
		if _, inLine := routeIDs[vjs[i].RouteID]; !inLine {
			continue
		}
		if old == "" || old == "*" || vjs[i].PhysicalModeID == old {
			vjs[i].PhysicalModeID = row.NewValue
		}
	}
}

func parseUint32Field(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
