// Package rules applies object-code additions, property edits, and
// consolidation rules to a Collections, producing a rewritten Collections and
// a structured Report describing every skipped or malformed row.
package rules

import (
	"fmt"

	"github.com/transitmodel/transit-model/logging"
)

// Category is one of the closed set of reasons a rule row can be skipped.
type Category string

const (
	ObjectNotFound               Category = "ObjectNotFound"
	InvalidFile                  Category = "InvalidFile"
	UnknownPropertyName          Category = "UnknownPropertyName"
	UnknownPropertyValue         Category = "UnknownPropertyValue"
	MultipleValue                Category = "MultipleValue"
	OldPropertyValueDoesNotMatch Category = "OldPropertyValueDoesNotMatch"
	NonConvertibleString         Category = "NonConvertibleString"
	GeometryNotValid             Category = "GeometryNotValid"
	UnAuthorisedValue            Category = "UnAuthorisedValue"
)

// Entry is one (category, message) report line.
type Entry struct {
	Category Category
	Message  string
}

// Report is the two-level structured log the rule engine returns alongside
// its rewritten Collections. Never fatal: every entry here corresponds to one
// skipped row, not an aborted run.
type Report struct {
	Errors   []Entry
	Warnings []Entry
}

func (r *Report) error(cat Category, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Errors = append(r.Errors, Entry{Category: cat, Message: msg})
	logging.L().Errorw("rule application error", "category", string(cat), "message", msg)
}

func (r *Report) warning(cat Category, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, Entry{Category: cat, Message: msg})
	logging.L().Warnw("rule application warning", "category", string(cat), "message", msg)
}

// IsClean reports whether the report carries neither errors nor warnings.
func (r *Report) IsClean() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}
