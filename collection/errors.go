package collection

import "github.com/pkg/errors"

// DuplicateIDError is returned when an operation would leave two entities
// sharing the same ID inside one CollectionWithId.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return "duplicate id: " + e.ID
}

func newDuplicateIDError(id string) error {
	return errors.WithStack(&DuplicateIDError{ID: id})
}

// IsDuplicateID reports whether err (or a cause in its chain) is a
// DuplicateIDError for the given id. An empty id matches any DuplicateIDError.
func IsDuplicateID(err error, id string) bool {
	var dup *DuplicateIDError
	if !errors.As(err, &dup) {
		return false
	}
	return id == "" || dup.ID == id
}
