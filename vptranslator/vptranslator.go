// Package vptranslator translates between a dense set of operating dates and
// a compact (weekly pattern + validity period + exceptions) representation,
// and back. From model it uses only the Date/DateSet types, and it has no
// dependency on collection or on any entity, keeping the translation logic
// reusable by both adapters building a Collections and enhancers rewriting
// one.
package vptranslator

import (
	"sort"
	"time"

	"github.com/transitmodel/transit-model/model"
)

// ExceptionType distinguishes an added date from a removed one.
type ExceptionType int

const (
	Add ExceptionType = iota
	Remove
)

// Exception is one date where the weekly pattern prediction disagrees with
// the actual operating-date set.
type Exception struct {
	Date model.Date
	Type ExceptionType
}

// ValidityPeriod is the inclusive date range a Translation's weekly pattern
// is evaluated over.
type ValidityPeriod struct {
	Start, End model.Date
}

// Translation is the compact representation of a model.DateSet: a subset of
// weekdays the service runs on, the period those weekdays are evaluated
// over, and the exceptions needed to reconcile prediction with reality.
type Translation struct {
	OperatingDays  map[time.Weekday]bool
	ValidityPeriod *ValidityPeriod
	Exceptions     []Exception
}

// Translate compresses a sorted, deduplicated set of operating dates into a
// Translation. An empty input produces an empty Translation with no
// validity period and no exceptions.
func Translate(dates model.DateSet) Translation {
	if len(dates) == 0 {
		return Translation{OperatingDays: map[time.Weekday]bool{}}
	}

	start, _ := dates.Min()
	end, _ := dates.Max()
	period := ValidityPeriod{Start: start, End: end}

	present := make(map[model.Date]bool, len(dates))
	for _, d := range dates {
		present[d] = true
	}

	// Majority vote per weekday: count how many occurrences of each weekday
	// within the period are present in dates vs. absent; a tie favours
	// inclusion.
	included := map[time.Weekday]int{}
	excluded := map[time.Weekday]int{}
	for d := period.Start; !d.After(period.End); d = d.AddDays(1) {
		w := d.Weekday()
		if present[d] {
			included[w]++
		} else {
			excluded[w]++
		}
	}

	operatingDays := map[time.Weekday]bool{}
	for w := time.Sunday; w <= time.Saturday; w++ {
		operatingDays[w] = included[w] >= excluded[w]
	}

	var exceptions []Exception
	for d := period.Start; !d.After(period.End); d = d.AddDays(1) {
		predicted := operatingDays[d.Weekday()]
		actual := present[d]
		switch {
		case actual && !predicted:
			exceptions = append(exceptions, Exception{Date: d, Type: Add})
		case !actual && predicted:
			exceptions = append(exceptions, Exception{Date: d, Type: Remove})
		}
	}

	return Translation{OperatingDays: operatingDays, ValidityPeriod: &period, Exceptions: exceptions}
}

// Expand reconstructs the original dense date set from a Translation: the
// weekly pattern is applied across the validity period, then every
// exception toggles its date. This is the exact inverse of Translate.
func Expand(t Translation) model.DateSet {
	if t.ValidityPeriod == nil {
		return model.NewDateSet(nil)
	}

	present := make(map[model.Date]bool)
	for d := t.ValidityPeriod.Start; !d.After(t.ValidityPeriod.End); d = d.AddDays(1) {
		if t.OperatingDays[d.Weekday()] {
			present[d] = true
		}
	}
	for _, e := range t.Exceptions {
		switch e.Type {
		case Add:
			present[e.Date] = true
		case Remove:
			delete(present, e.Date)
		}
	}

	out := make([]model.Date, 0, len(present))
	for d := range present {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return model.NewDateSet(out)
}
