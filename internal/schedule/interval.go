// Package schedule implements the scheduling engine: conflict detection
// between reservation intervals and geometric layout of events onto the
// month and day/week calendar grids. Everything in this package is a pure
// function over its inputs; persistence, auth and rendering live elsewhere.
package schedule

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when an operation receives an interval
// whose start is not strictly before its end. Endpoints are never swapped
// or corrected silently.
var ErrInvalidInterval = errors.New("schedule: interval start must be before end")

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Intervals that share only an endpoint do not overlap, so a
// reservation ending at T never collides with one starting at T.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// DayStart returns midnight of the calendar day containing t.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last representable instant of the calendar day
// containing t.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).Add(24*time.Hour - time.Nanosecond)
}

// ClipToDay truncates [start, end] to the boundaries of the calendar day
// containing day. The underlying reservation keeps its true start/end; a
// multi-day event is rendered once per day it spans, each time clipped to
// that day's window.
func ClipToDay(start, end, day time.Time) (time.Time, time.Time) {
	if ds := DayStart(day); start.Before(ds) {
		start = ds
	}
	if de := DayEnd(day); end.After(de) {
		end = de
	}
	return start, end
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
