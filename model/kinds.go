package model

import "github.com/transitmodel/transit-model/relations"

// Kind tokens for the relation graph. Declared as constants rather than
// derived by reflection so the set of participating kinds is explicit and
// reviewable in one place.
const (
	kindContributor    relations.Kind = "Contributor"
	kindDataset        relations.Kind = "Dataset"
	kindNetwork        relations.Kind = "Network"
	kindCompany        relations.Kind = "Company"
	kindCommercialMode relations.Kind = "CommercialMode"
	kindPhysicalMode   relations.Kind = "PhysicalMode"
	kindLine           relations.Kind = "Line"
	kindRoute          relations.Kind = "Route"
	kindVehicleJourney relations.Kind = "VehicleJourney"
	kindStopArea       relations.Kind = "StopArea"
	kindStopPoint      relations.Kind = "StopPoint"
)

// kindOf returns the declared Kind token for a model entity type. Callers
// pass the type explicitly as a type parameter, e.g. kindOf[Network]();
// it is a lookup table keyed by a small marker interface, not reflection.
type kindTagged interface {
	kindTag() relations.Kind
}

func (Contributor) kindTag() relations.Kind    { return kindContributor }
func (Dataset) kindTag() relations.Kind        { return kindDataset }
func (Network) kindTag() relations.Kind        { return kindNetwork }
func (Company) kindTag() relations.Kind        { return kindCompany }
func (CommercialMode) kindTag() relations.Kind { return kindCommercialMode }
func (PhysicalMode) kindTag() relations.Kind   { return kindPhysicalMode }
func (Line) kindTag() relations.Kind           { return kindLine }
func (Route) kindTag() relations.Kind          { return kindRoute }
func (VehicleJourney) kindTag() relations.Kind { return kindVehicleJourney }
func (StopArea) kindTag() relations.Kind       { return kindStopArea }
func (StopPoint) kindTag() relations.Kind      { return kindStopPoint }

func kindOf[T kindTagged]() relations.Kind {
	var zero T
	return zero.kindTag()
}
