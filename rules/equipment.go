package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/transitmodel/transit-model/model"
)

// equipmentProperties maps a pseudo-property name to the Equipment field it
// edits, for stop-point-targeted property edits.
var equipmentProperties = map[string]func(*model.Equipment) *model.Disponibility{
	"wheelchair_boarding":  func(e *model.Equipment) *model.Disponibility { return &e.WheelchairBoarding },
	"sheltered":            func(e *model.Equipment) *model.Disponibility { return &e.Sheltered },
	"elevator":             func(e *model.Equipment) *model.Disponibility { return &e.Elevator },
	"escalator":            func(e *model.Equipment) *model.Disponibility { return &e.Escalator },
	"bike_accepted":        func(e *model.Equipment) *model.Disponibility { return &e.BikeAccepted },
	"bike_depot":           func(e *model.Equipment) *model.Disponibility { return &e.BikeDepot },
	"visual_announcement":  func(e *model.Equipment) *model.Disponibility { return &e.VisualAnnouncement },
	"audible_announcement": func(e *model.Equipment) *model.Disponibility { return &e.AudibleAnnouncement },
	"appropriate_escort":   func(e *model.Equipment) *model.Disponibility { return &e.AppropriateEscort },
	"appropriate_signage":  func(e *model.Equipment) *model.Disponibility { return &e.AppropriateSignage },
}

// tripProperties maps a pseudo-property name to the TripProperty field it
// edits, for line-targeted property edits (applied to every VJ of the line).
var tripProperties = map[string]func(*model.TripProperty) *model.Disponibility{
	"wheelchair_accessible": func(p *model.TripProperty) *model.Disponibility { return &p.WheelchairAccessible },
	"bike_accepted":         func(p *model.TripProperty) *model.Disponibility { return &p.BikeAccepted },
	"air_conditioned":       func(p *model.TripProperty) *model.Disponibility { return &p.AirConditioned },
	"visual_announcement":   func(p *model.TripProperty) *model.Disponibility { return &p.VisualAnnouncement },
	"audible_announcement":  func(p *model.TripProperty) *model.Disponibility { return &p.AudibleAnnouncement },
	"appropriate_escort":    func(p *model.TripProperty) *model.Disponibility { return &p.AppropriateEscort },
	"appropriate_signage":   func(p *model.TripProperty) *model.Disponibility { return &p.AppropriateSignage },
	"school_vehicle_type":   func(p *model.TripProperty) *model.Disponibility { return &p.SchoolVehicleType },
}

// IsEquipmentProperty reports whether property is a stop-point pseudo-property.
func IsEquipmentProperty(ot model.ObjectType, property string) bool {
	if ot != model.ObjectStopPoint {
		return false
	}
	_, ok := equipmentProperties[property]
	return ok
}

// IsTripProperty reports whether property is a line pseudo-property.
func IsTripProperty(ot model.ObjectType, property string) bool {
	if ot != model.ObjectLine {
		return false
	}
	_, ok := tripProperties[property]
	return ok
}

func parseDisponibility(s string) (model.Disponibility, bool) {
	switch s {
	case "0":
		return model.InformationNotAvailable, true
	case "1":
		return model.Available, true
	case "2":
		return model.NotAvailable, true
	default:
		return 0, false
	}
}

// idPrefix derives the allocation prefix for generated Equipment/TripProperty
// IDs from the first contributor's own id, following the convention
// "<contributor>:<local-id>".
func idPrefix(c *model.Collections) string {
	for _, contributor := range c.Contributors.Values() {
		if i := strings.IndexByte(contributor.ID(), ':'); i >= 0 {
			return contributor.ID()[:i] + ":"
		}
	}
	return "generated:"
}

// ApplyEquipmentEdits applies pseudo-property edits targeting stop points to
// their referenced Equipment, creating one (with all fields
// InformationNotAvailable) if the stop point has none, and deduplicating by
// structural equality: if the edited Equipment matches an existing one, its
// ID is reused instead of allocating a fresh one.
func ApplyEquipmentEdits(c *model.Collections, rows []PropertyEditRow, report *Report) {
	byStopPoint := map[string][]PropertyEditRow{}
	var order []string
	for _, row := range rows {
		if !IsEquipmentProperty(row.ObjectType, row.PropertyName) {
			continue
		}
		if _, seen := byStopPoint[row.ObjectID]; !seen {
			order = append(order, row.ObjectID)
		}
		byStopPoint[row.ObjectID] = append(byStopPoint[row.ObjectID], row)
	}

	prefix := idPrefix(c)
	for _, stopPointID := range order {
		sp, ok := c.StopPoints.Get(stopPointID)
		if !ok {
			report.warning(ObjectNotFound, "object_type=%s, object_id=%s: object not found", model.ObjectStopPoint, stopPointID)
			continue
		}
		eq := currentEquipment(c, sp.EquipmentID)

		for _, row := range byStopPoint[stopPointID] {
			field := equipmentProperties[row.PropertyName]
			if row.OldValue != nil && *row.OldValue != "*" {
				old, ok := parseDisponibility(*row.OldValue)
				if !ok {
					report.warning(UnknownPropertyValue, "object_type=%s, object_id=%s, property_name=%s: unknown value %q",
						row.ObjectType, row.ObjectID, row.PropertyName, *row.OldValue)
					continue
				}
				if *field(&eq) != old {
					report.warning(OldPropertyValueDoesNotMatch,
						"object_type=%s, object_id=%s, property_name=%s: property_old_value does not match the value found in the data",
						row.ObjectType, row.ObjectID, row.PropertyName)
					continue
				}
			}
			value, ok := parseDisponibility(row.NewValue)
			if !ok {
				report.warning(UnknownPropertyValue, "object_type=%s, object_id=%s, property_name=%s: unknown value %q",
					row.ObjectType, row.ObjectID, row.PropertyName, row.NewValue)
				continue
			}
			*field(&eq) = value
		}

		eqID := getOrCreateEquipment(c, eq, prefix)
		ref := c.StopPoints.GetMut(stopPointID)
		ref.Value().EquipmentID = &eqID
		ref.Release()
	}
}

func currentEquipment(c *model.Collections, equipmentID *string) model.Equipment {
	if equipmentID == nil {
		return model.Equipment{}
	}
	eq, ok := c.Equipments.Get(*equipmentID)
	if !ok {
		return model.Equipment{}
	}
	cp := *eq
	cp.IDField = ""
	return cp
}

func getOrCreateEquipment(c *model.Collections, wanted model.Equipment, prefix string) string {
	for _, existing := range c.Equipments.Values() {
		cp := existing
		cp.IDField = ""
		if cp == wanted {
			return existing.ID()
		}
	}
	id := generateID(prefix, c.Equipments.ContainsID)
	wanted.IDField = id
	_, _ = c.Equipments.Push(wanted)
	return id
}

// ApplyTripPropertyEdits applies pseudo-property edits targeting lines to the
// TripProperty of every vehicle journey on that line, with the same
// create-if-absent, dedup-by-structural-equality semantics as
// ApplyEquipmentEdits.
func ApplyTripPropertyEdits(c *model.Collections, rows []PropertyEditRow, report *Report) {
	byLine := map[string][]PropertyEditRow{}
	var order []string
	for _, row := range rows {
		if !IsTripProperty(row.ObjectType, row.PropertyName) {
			continue
		}
		if _, seen := byLine[row.ObjectID]; !seen {
			order = append(order, row.ObjectID)
		}
		byLine[row.ObjectID] = append(byLine[row.ObjectID], row)
	}

	prefix := idPrefix(c)
	for _, lineID := range order {
		if !c.Lines.ContainsID(lineID) {
			report.warning(ObjectNotFound, "object_type=%s, object_id=%s: object not found", model.ObjectLine, lineID)
			continue
		}
		vjIDs := vjIDsForLine(c, lineID)
		sort.Strings(vjIDs)

		for _, vjID := range vjIDs {
			vj, _ := c.VehicleJourneys.Get(vjID)
			prop := currentTripProperty(c, vj.TripPropertyID)

			for _, row := range byLine[lineID] {
				if row.OldValue != nil && *row.OldValue != "*" {
					report.warning(OldPropertyValueDoesNotMatch,
						"object_type=%s, object_id=%s, property_name=%s: property_old_value does not match the value found in the data",
						row.ObjectType, row.ObjectID, row.PropertyName)
					continue
				}
				value, ok := parseDisponibility(row.NewValue)
				if !ok || value == model.InformationNotAvailable {
					report.warning(UnknownPropertyValue, "object_type=%s, object_id=%s, property_name=%s: unknown value %q",
						row.ObjectType, row.ObjectID, row.PropertyName, row.NewValue)
					continue
				}
				field := tripProperties[row.PropertyName]
				*field(&prop) = value
			}

			propID := getOrCreateTripProperty(c, prop, prefix)
			ref := c.VehicleJourneys.GetMut(vjID)
			ref.Value().TripPropertyID = &propID
			ref.Release()
		}
	}
}

func vjIDsForLine(c *model.Collections, lineID string) []string {
	routeIDs := map[string]struct{}{}
	for _, r := range c.Routes.Values() {
		if r.LineID == lineID {
			routeIDs[r.ID()] = struct{}{}
		}
	}
	var ids []string
	for _, vj := range c.VehicleJourneys.Values() {
		if _, ok := routeIDs[vj.RouteID]; ok {
			ids = append(ids, vj.ID())
		}
	}
	return ids
}

func currentTripProperty(c *model.Collections, tripPropertyID *string) model.TripProperty {
	if tripPropertyID == nil {
		return model.TripProperty{}
	}
	p, ok := c.TripProperties.Get(*tripPropertyID)
	if !ok {
		return model.TripProperty{}
	}
	cp := *p
	cp.IDField = ""
	return cp
}

func getOrCreateTripProperty(c *model.Collections, wanted model.TripProperty, prefix string) string {
	for _, existing := range c.TripProperties.Values() {
		cp := existing
		cp.IDField = ""
		if cp == wanted {
			return existing.ID()
		}
	}
	id := generateID(prefix, c.TripProperties.ContainsID)
	wanted.IDField = id
	_, _ = c.TripProperties.Push(wanted)
	return id
}

func generateID(prefix string, exists func(string) bool) string {
	for inc := 1; ; inc++ {
		id := fmt.Sprintf("%s%d", prefix, inc)
		if !exists(id) {
			return id
		}
	}
}
