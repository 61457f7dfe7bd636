package schedule

import (
	"sort"
	"time"
)

// DayEdge classifies how an event touches one calendar day, used to
// render continuation bars for multi-day events.
type DayEdge string

const (
	EdgeNone  DayEdge = "none"  // starts and ends on this day
	EdgeStart DayEdge = "start" // first day of a multi-day event
	EdgeEnd   DayEdge = "end"   // last day of a multi-day event
	EdgeMid   DayEdge = "mid"   // passes through this day
)

// DayEvent is an event annotated with its edge relative to one day.
type DayEvent struct {
	Event
	Edge DayEdge
}

// EventsForDay returns the events whose day span covers date. Membership
// is decided at calendar-day granularity: an event keeps its final day
// even when it ends exactly at midnight of that day.
func EventsForDay(events []Event, date time.Time) []DayEvent {
	return eventsCoveringDay(events, date, false)
}

// MultiDayEventsForWeek returns only the events spanning more than one
// calendar day that cover date. The week timeline renders single-day
// events as timed blocks and reserves the all-day strip for multi-day
// continuation bars, so the two sets are filtered separately rather than
// folded into one day filter.
func MultiDayEventsForWeek(events []Event, date time.Time) []DayEvent {
	return eventsCoveringDay(events, date, true)
}

func eventsCoveringDay(events []Event, date time.Time, multiDayOnly bool) []DayEvent {
	target := DayStart(date)
	var out []DayEvent
	for _, ev := range events {
		startDay := DayStart(ev.Start)
		endDay := DayStart(ev.End)
		if multiDayOnly && startDay.Equal(endDay) {
			continue
		}
		if startDay.After(target) || endDay.Before(target) {
			continue
		}
		out = append(out, DayEvent{Event: ev, Edge: edgeFor(startDay, endDay, target)})
	}
	return out
}

func edgeFor(startDay, endDay, target time.Time) DayEdge {
	switch {
	case startDay.Equal(endDay):
		return EdgeNone
	case startDay.Equal(target):
		return EdgeStart
	case endDay.Equal(target):
		return EdgeEnd
	default:
		return EdgeMid
	}
}

// WeekStart returns Monday midnight of the week containing date.
func WeekStart(date time.Time) time.Time {
	d := DayStart(date)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekDates returns the seven days of the Monday-start week containing
// date.
func WeekDates(date time.Time) []time.Time {
	start := WeekStart(date)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// EventsForWeek returns the events intersecting the Monday-start 7-day
// window containing date, under the half-open overlap rule.
func EventsForWeek(events []Event, date time.Time) []Event {
	start := WeekStart(date)
	return eventsInWindow(events, start, start.AddDate(0, 0, 7))
}

// MonthStart returns midnight of the first day of date's month.
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthEnd returns the last instant of date's calendar month.
func MonthEnd(date time.Time) time.Time {
	return MonthStart(date).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// EventsForMonth returns the events intersecting the calendar month
// containing date.
func EventsForMonth(events []Event, date time.Time) []Event {
	start := MonthStart(date)
	return eventsInWindow(events, start, start.AddDate(0, 1, 0))
}

func eventsInWindow(events []Event, start, end time.Time) []Event {
	var out []Event
	for _, ev := range events {
		if Overlaps(ev.Start, ev.End, start, end) {
			out = append(out, ev)
		}
	}
	return out
}

// CellEvent is an event annotated for one month-grid cell.
type CellEvent struct {
	Event
	Lane     int
	MultiDay bool
}

// MonthCellEvents returns the events covering one month-grid day, ordered
// multi-day bars first and then by lane, which is the order the grid
// stacks them in. Events without a lane carry LaneUnassigned and sort
// before lane 0 within their class; callers count them into the overflow
// indicator.
func MonthCellEvents(events []Event, date time.Time, positions map[string]int) []CellEvent {
	target := DayStart(date)
	var out []CellEvent
	for _, ev := range events {
		if DayStart(ev.Start).After(target) || DayStart(ev.End).Before(target) {
			continue
		}
		out = append(out, CellEvent{
			Event:    ev,
			Lane:     Lane(positions, ev.ID),
			MultiDay: ev.MultiDay(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MultiDay != out[j].MultiDay {
			return out[i].MultiDay
		}
		return out[i].Lane < out[j].Lane
	})
	return out
}

// Cell is one box of the month grid.
type Cell struct {
	Date         time.Time `json:"date"`
	Day          int       `json:"day"`
	CurrentMonth bool      `json:"current_month"`
}

// MonthCells lays out the month grid for date: leading days from the
// previous month so the first row starts on Sunday, the month itself,
// and trailing days to complete the final week.
func MonthCells(date time.Time) []Cell {
	start := MonthStart(date)
	daysInMonth := start.AddDate(0, 1, -1).Day()

	var cells []Cell
	for i := int(start.Weekday()); i > 0; i-- {
		d := start.AddDate(0, 0, -i)
		cells = append(cells, Cell{Date: d, Day: d.Day(), CurrentMonth: false})
	}
	for i := 0; i < daysInMonth; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{Date: d, Day: d.Day(), CurrentMonth: true})
	}
	for len(cells)%7 != 0 {
		d := cells[len(cells)-1].Date.AddDate(0, 0, 1)
		cells = append(cells, Cell{Date: d, Day: d.Day(), CurrentMonth: false})
	}
	return cells
}
