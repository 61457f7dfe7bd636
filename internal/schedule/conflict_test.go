package schedule

import (
	"errors"
	"testing"
)

func TestCheckConflict(t *testing.T) {
	existing := []Event{
		ev("b1", at(10, 10, 0), at(10, 12, 0)),
	}

	t.Run("candidate overlapping existing conflicts", func(t *testing.T) {
		got, err := CheckConflict("aula-lantai-1", at(10, 11, 0), at(10, 13, 0), existing, "")
		if err != nil {
			t.Fatalf("CheckConflict() error = %v", err)
		}
		if got == nil {
			t.Fatal("expected a conflict")
		}
		if got.ID != "b1" || !got.Start.Equal(at(10, 10, 0)) {
			t.Errorf("conflicting reservation = %+v", got)
		}
	})

	t.Run("candidate starting at existing end does not conflict", func(t *testing.T) {
		got, err := CheckConflict("aula-lantai-1", at(10, 12, 0), at(10, 13, 0), existing, "")
		if err != nil {
			t.Fatalf("CheckConflict() error = %v", err)
		}
		if got != nil {
			t.Errorf("adjacency flagged as conflict: %+v", got)
		}
	})

	t.Run("candidate ending at existing start does not conflict", func(t *testing.T) {
		got, err := CheckConflict("aula-lantai-1", at(10, 8, 0), at(10, 10, 0), existing, "")
		if err != nil {
			t.Fatalf("CheckConflict() error = %v", err)
		}
		if got != nil {
			t.Errorf("adjacency flagged as conflict: %+v", got)
		}
	})

	t.Run("containment conflicts both ways", func(t *testing.T) {
		for _, c := range []struct{ start, end int }{{9, 13}, {10, 11}} {
			got, err := CheckConflict("aula-lantai-1", at(10, c.start, 0), at(10, c.end, 0), existing, "")
			if err != nil {
				t.Fatalf("CheckConflict() error = %v", err)
			}
			if got == nil {
				t.Errorf("candidate %02d:00-%02d:00 should conflict", c.start, c.end)
			}
		}
	})

	t.Run("earliest conflicting reservation wins regardless of order", func(t *testing.T) {
		a := ev("late", at(10, 11, 0), at(10, 12, 0))
		b := ev("early", at(10, 9, 0), at(10, 10, 30))

		for _, records := range [][]Event{{a, b}, {b, a}} {
			got, err := CheckConflict("aula-lantai-1", at(10, 9, 30), at(10, 11, 30), records, "")
			if err != nil {
				t.Fatalf("CheckConflict() error = %v", err)
			}
			if got == nil || got.ID != "early" {
				t.Errorf("got %+v, want the earliest-starting reservation", got)
			}
		}
	})

	t.Run("excludeID skips the reservation being edited", func(t *testing.T) {
		got, err := CheckConflict("aula-lantai-1", at(10, 10, 30), at(10, 11, 30), existing, "b1")
		if err != nil {
			t.Fatalf("CheckConflict() error = %v", err)
		}
		if got != nil {
			t.Errorf("excluded reservation still reported: %+v", got)
		}
	})

	t.Run("rejected and other-location records are ignored", func(t *testing.T) {
		rejected := ev("r1", at(10, 10, 0), at(10, 12, 0))
		rejected.Status = StatusRejected
		elsewhere := ev("e1", at(10, 10, 0), at(10, 12, 0))
		elsewhere.Location = "aula-lantai-2"

		got, err := CheckConflict("aula-lantai-1", at(10, 10, 0), at(10, 12, 0), []Event{rejected, elsewhere}, "")
		if err != nil {
			t.Fatalf("CheckConflict() error = %v", err)
		}
		if got != nil {
			t.Errorf("got conflict %+v, want none", got)
		}
	})

	t.Run("symmetric between reserved and candidate", func(t *testing.T) {
		a := ev("a", at(10, 10, 0), at(10, 12, 0))
		b := ev("b", at(10, 11, 0), at(10, 13, 0))

		gotAB, err := CheckConflict(a.Location, b.Start, b.End, []Event{a}, "")
		if err != nil {
			t.Fatal(err)
		}
		gotBA, err := CheckConflict(b.Location, a.Start, a.End, []Event{b}, "")
		if err != nil {
			t.Fatal(err)
		}
		if (gotAB == nil) != (gotBA == nil) {
			t.Errorf("conflict(A,B)=%v but conflict(B,A)=%v", gotAB != nil, gotBA != nil)
		}
	})

	t.Run("invalid interval rejected", func(t *testing.T) {
		_, err := CheckConflict("aula-lantai-1", at(10, 12, 0), at(10, 12, 0), existing, "")
		if !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("error = %v, want ErrInvalidInterval", err)
		}
		_, err = CheckConflict("aula-lantai-1", at(10, 13, 0), at(10, 12, 0), existing, "")
		if !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("error = %v, want ErrInvalidInterval", err)
		}
	})

	t.Run("empty input yields no conflict", func(t *testing.T) {
		got, err := CheckConflict("aula-lantai-1", at(10, 10, 0), at(10, 12, 0), nil, "")
		if err != nil || got != nil {
			t.Errorf("got (%+v, %v), want (nil, nil)", got, err)
		}
	})
}
