package model

import "github.com/pkg/errors"

// ReferentialIntegrityError is returned by Model.New when a foreign key does
// not resolve. Fatal: no partial Model is ever exposed.
type ReferentialIntegrityError struct {
	Kind string
	ID   string
}

func (e *ReferentialIntegrityError) Error() string {
	return "referential integrity: " + e.Kind + " " + e.ID + " not found"
}

func referentialIntegrityError(kind, id string) error {
	return errors.WithStack(&ReferentialIntegrityError{Kind: kind, ID: id})
}
