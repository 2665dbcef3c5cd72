package model

import (
	"sort"
	"time"
)

// Date is a calendar day with no time-of-day or location component.
type Date struct {
	t time.Time
}

// NewDate builds a Date from a (year, month, day) triple in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d follows other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports calendar-day equality.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// DateSet is a sorted, deduplicated set of dates. It is the wire-level shape
// of Calendar.Dates and the translator's input/output; sortedness is an
// invariant maintained by every mutating helper in this package.
type DateSet []Date

// NewDateSet builds a sorted, deduplicated DateSet from dates in any order.
func NewDateSet(dates []Date) DateSet {
	if len(dates) == 0 {
		return nil
	}
	sorted := make(DateSet, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	out := sorted[:1]
	for _, d := range sorted[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}

// Contains reports whether d is in the set.
func (ds DateSet) Contains(d Date) bool {
	i := sort.Search(len(ds), func(i int) bool { return !ds[i].Before(d) })
	return i < len(ds) && ds[i].Equal(d)
}

// Min returns the earliest date; ok is false for an empty set.
func (ds DateSet) Min() (d Date, ok bool) {
	if len(ds) == 0 {
		return Date{}, false
	}
	return ds[0], true
}

// Max returns the latest date; ok is false for an empty set.
func (ds DateSet) Max() (d Date, ok bool) {
	if len(ds) == 0 {
		return Date{}, false
	}
	return ds[len(ds)-1], true
}

// Restrict returns the subset of ds within [start, end] inclusive.
func (ds DateSet) Restrict(start, end Date) DateSet {
	var out DateSet
	for _, d := range ds {
		if !d.Before(start) && !d.After(end) {
			out = append(out, d)
		}
	}
	return out
}
