package schedule

import (
	"testing"
	"time"
)

// at builds a local timestamp for fixtures.
func at(day, hour, min int) time.Time {
	return time.Date(2025, time.March, day, hour, min, 0, 0, time.UTC)
}

func ev(id string, start, end time.Time) Event {
	return Event{ID: id, Location: "aula-lantai-1", Start: start, End: end, Status: StatusApproved}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", at(1, 10, 0), at(1, 12, 0), at(1, 11, 0), at(1, 13, 0), true},
		{"containment", at(1, 9, 0), at(1, 17, 0), at(1, 11, 0), at(1, 12, 0), true},
		{"identical", at(1, 10, 0), at(1, 12, 0), at(1, 10, 0), at(1, 12, 0), true},
		{"adjacent end-to-start", at(1, 10, 0), at(1, 12, 0), at(1, 12, 0), at(1, 13, 0), false},
		{"adjacent start-to-end", at(1, 12, 0), at(1, 13, 0), at(1, 10, 0), at(1, 12, 0), false},
		{"disjoint", at(1, 8, 0), at(1, 9, 0), at(1, 14, 0), at(1, 15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// The predicate is symmetric in its two intervals.
			if got := Overlaps(tt.s2, tt.e2, tt.s1, tt.e1); got != tt.want {
				t.Errorf("Overlaps() swapped = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClipToDay(t *testing.T) {
	day := at(2, 0, 0)

	t.Run("inside day untouched", func(t *testing.T) {
		start, end := ClipToDay(at(2, 9, 0), at(2, 11, 0), day)
		if !start.Equal(at(2, 9, 0)) || !end.Equal(at(2, 11, 0)) {
			t.Errorf("got [%v, %v]", start, end)
		}
	})

	t.Run("spanning event clipped both sides", func(t *testing.T) {
		start, end := ClipToDay(at(1, 23, 0), at(3, 2, 0), day)
		if !start.Equal(DayStart(day)) {
			t.Errorf("start = %v, want day start", start)
		}
		if !end.Equal(DayEnd(day)) {
			t.Errorf("end = %v, want day end", end)
		}
	})
}

func TestSameDay(t *testing.T) {
	if !SameDay(at(5, 0, 0), at(5, 23, 59)) {
		t.Error("same calendar day reported as different")
	}
	if SameDay(at(5, 23, 59), at(6, 0, 0)) {
		t.Error("adjacent days reported as same")
	}
}
