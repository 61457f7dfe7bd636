package schedule

import (
	"sort"
	"time"
)

const (
	// DefaultLaneCount is the number of horizontal slots available per day
	// in the month grid.
	DefaultLaneCount = 3

	// LaneUnassigned marks events that found no free lane across their full
	// day span. Not an error: callers render an "+N more" overflow indicator
	// for these events instead of a bar.
	LaneUnassigned = -1
)

// AssignLanes places each event into one of laneCount horizontal lanes of
// the month grid so that no two events sharing a calendar day occupy the
// same lane. Events are processed longest first (ties broken by earliest
// start, then ID), because long events are the most disruptive to bump;
// each takes the lowest lane that is free on every day of its span clipped
// to [monthStart, monthEnd]. The full, unclipped duration still decides
// sort priority.
//
// The returned map only contains assigned events; use Lane to read it with
// the LaneUnassigned default. Given the same event set, month bounds and
// laneCount the assignment is fully deterministic, regardless of input
// order.
func AssignLanes(events []Event, monthStart, monthEnd time.Time, laneCount int) map[string]int {
	if laneCount <= 0 {
		laneCount = DefaultLaneCount
	}

	occupied := make(map[time.Time][]bool)
	last := DayStart(monthEnd)
	for d := DayStart(monthStart); !d.After(last); d = d.AddDate(0, 0, 1) {
		occupied[d] = make([]bool, laneCount)
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := spanDays(sorted[i]), spanDays(sorted[j])
		if di != dj {
			return di > dj
		}
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].ID < sorted[j].ID
	})

	positions := make(map[string]int, len(sorted))
	for _, ev := range sorted {
		days := daySpan(ev, monthStart, monthEnd)
		if len(days) == 0 {
			continue
		}

		lane := LaneUnassigned
		for l := 0; l < laneCount; l++ {
			if laneFree(occupied, days, l) {
				lane = l
				break
			}
		}
		if lane == LaneUnassigned {
			continue
		}

		for _, d := range days {
			occupied[d][lane] = true
		}
		positions[ev.ID] = lane
	}

	return positions
}

// Lane returns the lane assigned to id, or LaneUnassigned.
func Lane(positions map[string]int, id string) int {
	if l, ok := positions[id]; ok {
		return l
	}
	return LaneUnassigned
}

// spanDays counts the calendar days an event crosses, zero for a
// same-day event.
func spanDays(ev Event) int {
	n := 0
	end := DayStart(ev.End)
	for d := DayStart(ev.Start); d.Before(end); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// daySpan lists the calendar days of the event clipped to the month
// bounds. A same-day event still occupies exactly one day; an event
// entirely outside the month yields no days.
func daySpan(ev Event, monthStart, monthEnd time.Time) []time.Time {
	first := DayStart(ev.Start)
	if ms := DayStart(monthStart); first.Before(ms) {
		first = ms
	}
	last := DayStart(ev.End)
	if me := DayStart(monthEnd); last.After(me) {
		last = me
	}

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func laneFree(occupied map[time.Time][]bool, days []time.Time, lane int) bool {
	for _, d := range days {
		slots, ok := occupied[d]
		if !ok || slots[lane] {
			return false
		}
	}
	return true
}
