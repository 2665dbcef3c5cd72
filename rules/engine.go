package rules

import "github.com/transitmodel/transit-model/model"

// Input collects every rule source a single application run draws from.
// Fields are independent: a caller with only a property-edit file leaves
// the others at their zero value.
type Input struct {
	ObjectCodes          []ObjectCodeRow
	PropertyEdits        []PropertyEditRow
	Consolidation        *ConsolidationFile
	DeriveEquipment      bool // enables G.4 for stop-point pseudo-properties
	DeriveTripProperties bool // enables G.4 for line pseudo-properties
}

// Apply runs every requested rule family against c in spec order (object
// codes, property edits, equipment/trip-property derivation, then
// consolidations), accumulating every entry into report. c is mutated in place;
// callers that need the pre-rule state should operate on a copy.
func Apply(c *model.Collections, in Input, report *Report) {
	ApplyObjectCodes(c, in.ObjectCodes, report)
	ApplyPropertyEdits(c, in.PropertyEdits, report)
	if in.DeriveEquipment {
		ApplyEquipmentEdits(c, in.PropertyEdits, report)
	}
	if in.DeriveTripProperties {
		ApplyTripPropertyEdits(c, in.PropertyEdits, report)
	}
	if in.Consolidation != nil {
		ApplyConsolidations(c, *in.Consolidation, report)
	}
}
