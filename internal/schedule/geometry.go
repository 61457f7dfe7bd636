package schedule

import "time"

// minutesPerDay is the height of the 24-hour timeline column.
const minutesPerDay = 1440

// BlockGeometry positions an event block on the 24-hour vertical
// timeline. All fields are percentages of the full day column, so
// top+height <= 100 and left+width <= 100 for well-formed input.
type BlockGeometry struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
}

// ComputeBlockGeometry converts an event and its column slot into a
// renderable block for the given day. The event is clipped to the day's
// window first, so a booking spanning midnight produces one block per
// day it touches.
func ComputeBlockGeometry(ev Event, day time.Time, groupIndex, groupSize int) BlockGeometry {
	start, end := ClipToDay(ev.Start, ev.End, day)

	startMinutes := start.Sub(DayStart(day)).Minutes()
	durationMinutes := end.Sub(start).Minutes()
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	width := 100.0 / float64(groupSize)
	return BlockGeometry{
		Top:    startMinutes / minutesPerDay * 100,
		Height: durationMinutes / minutesPerDay * 100,
		Left:   float64(groupIndex) * width,
		Width:  width,
	}
}

// Placement couples an event with its column slot and on-screen block.
type Placement struct {
	Event      Event
	GroupIndex int
	GroupSize  int
	Block      BlockGeometry
}

// LayoutDay packs one day's events into columns and computes the block
// geometry for each. An event whose column group overlaps no sibling
// group is widened to the full day width, so an isolated booking is not
// rendered artificially narrow just because other columns exist
// elsewhere in the day.
func LayoutDay(events []Event, day time.Time) []Placement {
	groups := PackColumns(events)

	var placements []Placement
	for gi, group := range groups {
		for _, ev := range group {
			block := ComputeBlockGeometry(ev, day, gi, len(groups))
			if !overlapsOtherGroup(ev, gi, groups) {
				block.Left = 0
				block.Width = 100
			}
			placements = append(placements, Placement{
				Event:      ev,
				GroupIndex: gi,
				GroupSize:  len(groups),
				Block:      block,
			})
		}
	}

	return placements
}

func overlapsOtherGroup(ev Event, groupIndex int, groups [][]Event) bool {
	for gi, group := range groups {
		if gi == groupIndex {
			continue
		}
		for _, other := range group {
			if Overlaps(ev.Start, ev.End, other.Start, other.End) {
				return true
			}
		}
	}
	return false
}
