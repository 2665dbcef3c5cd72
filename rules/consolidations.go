package rules

import "github.com/transitmodel/transit-model/model"

// ConsolidationFile is the JSON consolidation rule format: one group per
// consolidated entity kind, decoded directly by encoding/json.
type ConsolidationFile struct {
	Networks        []NetworkConsolidation        `json:"networks"`
	CommercialModes []CommercialModeConsolidation `json:"commercial_modes"`
	PhysicalModes   []PhysicalModeConsolidation   `json:"physical_modes"`
}

// NetworkConsolidation groups GroupedFrom source networks into Target.
type NetworkConsolidation struct {
	Target      model.Network `json:"properties"`
	GroupedFrom []string      `json:"grouped_from"`
}

// CommercialModeConsolidation groups GroupedFrom source commercial modes
// into Target.
type CommercialModeConsolidation struct {
	Target      model.CommercialMode `json:"properties"`
	GroupedFrom []string             `json:"grouped_from"`
}

// PhysicalModeConsolidation groups GroupedFrom source physical modes into
// Target.
type PhysicalModeConsolidation struct {
	Target      model.PhysicalMode `json:"properties"`
	GroupedFrom []string           `json:"grouped_from"`
}

// ApplyConsolidations applies every network/commercial-mode/physical-mode
// consolidation, creating each target from its supplied definition if
// missing, reassigning every referring entity from each source to the
// target, and deleting sources that were actually consolidated.
func ApplyConsolidations(c *model.Collections, file ConsolidationFile, report *Report) {
	for _, group := range file.Networks {
		consolidateNetwork(c, group, report)
	}
	for _, group := range file.CommercialModes {
		consolidateCommercialMode(c, group, report)
	}
	for _, group := range file.PhysicalModes {
		consolidatePhysicalMode(c, group, report)
	}
}

func consolidateNetwork(c *model.Collections, group NetworkConsolidation, report *Report) {
	targetID := group.Target.ID()
	if !c.Networks.ContainsID(targetID) {
		_, _ = c.Networks.Push(group.Target)
	}

	consolidated := false
	for _, sourceID := range group.GroupedFrom {
		if sourceID == targetID || !c.Networks.ContainsID(sourceID) {
			report.error(ObjectNotFound, "the grouped network %q does not exist", sourceID)
			continue
		}
		lines := c.Lines.ValuesMut()
		for i := range lines {
			if lines[i].NetworkID == sourceID {
				lines[i].NetworkID = targetID
			}
		}
		for i := range c.TicketUsePerimeters {
			tup := &c.TicketUsePerimeters[i]
			if tup.ObjectType == model.ObjectNetwork && tup.ObjectID == sourceID {
				tup.ObjectID = targetID
			}
		}
		c.Networks.Retain(func(n *model.Network) bool { return n.ID() != sourceID })
		consolidated = true
	}
	if !consolidated {
		report.error(ObjectNotFound, "the rule on network %q was not applied", targetID)
	}
}

func consolidateCommercialMode(c *model.Collections, group CommercialModeConsolidation, report *Report) {
	targetID := group.Target.ID()
	if !c.CommercialModes.ContainsID(targetID) {
		_, _ = c.CommercialModes.Push(group.Target)
	}

	consolidated := false
	for _, sourceID := range group.GroupedFrom {
		if sourceID == targetID || !c.CommercialModes.ContainsID(sourceID) {
			report.error(ObjectNotFound, "the grouped commercial mode %q does not exist", sourceID)
			continue
		}
		lines := c.Lines.ValuesMut()
		for i := range lines {
			if lines[i].CommercialModeID == sourceID {
				lines[i].CommercialModeID = targetID
			}
		}
		c.CommercialModes.Retain(func(m *model.CommercialMode) bool { return m.ID() != sourceID })
		consolidated = true
	}
	if !consolidated {
		report.error(ObjectNotFound, "the rule on commercial mode %q was not applied", targetID)
	}
}

func consolidatePhysicalMode(c *model.Collections, group PhysicalModeConsolidation, report *Report) {
	targetID := group.Target.ID()
	if !c.PhysicalModes.ContainsID(targetID) {
		_, _ = c.PhysicalModes.Push(group.Target)
	}

	consolidated := false
	for _, sourceID := range group.GroupedFrom {
		if sourceID == targetID || !c.PhysicalModes.ContainsID(sourceID) {
			report.error(ObjectNotFound, "the grouped physical mode %q does not exist", sourceID)
			continue
		}
		vjs := c.VehicleJourneys.ValuesMut()
		for i := range vjs {
			if vjs[i].PhysicalModeID == sourceID {
				vjs[i].PhysicalModeID = targetID
			}
		}
		c.PhysicalModes.Retain(func(m *model.PhysicalMode) bool { return m.ID() != sourceID })
		consolidated = true
	}
	if !consolidated {
		report.error(ObjectNotFound, "the rule on physical mode %q was not applied", targetID)
	}
}
