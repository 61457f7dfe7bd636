package schedule

import "sort"

// PackColumns partitions one day's events into side-by-side columns so
// that no column holds two overlapping events. Events are taken in
// ascending start order (ties broken by ID) and appended to the first
// column whose last event ends at or before the new event's start; if
// none qualifies a new column is opened.
//
// This greedy first-fit is not guaranteed to produce the minimum number
// of columns for every overlap pattern (that would take full
// interval-graph coloring); it is kept as-is because booking density is
// low and the rendered layout depends on the specific greedy ordering.
func PackColumns(events []Event) [][]Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var columns [][]Event
	for _, ev := range sorted {
		placed := false
		for ci := range columns {
			last := columns[ci][len(columns[ci])-1]
			if !last.End.After(ev.Start) {
				columns[ci] = append(columns[ci], ev)
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []Event{ev})
		}
	}

	return columns
}
