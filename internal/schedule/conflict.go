package schedule

import "time"

// CheckConflict decides whether the candidate interval [start, end) at
// location collides with an existing reservation. Records with status
// rejected, a different location, or an ID equal to excludeID are skipped;
// excludeID lets an edit-in-place ignore the reservation being modified.
//
// The same half-open overlap rule applies whether the candidate starts
// during an existing reservation, ends during one, or contains/is
// contained by one. When several reservations conflict, the one with the
// earliest start is returned, with ID as a stable tie-break, so the
// verdict does not depend on the order records arrive from storage.
//
// Returns ErrInvalidInterval when start is not strictly before end.
func CheckConflict(location string, start, end time.Time, existing []Event, excludeID string) (*Event, error) {
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	var found *Event
	for i := range existing {
		ev := existing[i]
		if ev.ID == excludeID || ev.Location != location || ev.Status == StatusRejected {
			continue
		}
		if !Overlaps(start, end, ev.Start, ev.End) {
			continue
		}
		if found == nil || ev.Start.Before(found.Start) ||
			(ev.Start.Equal(found.Start) && ev.ID < found.ID) {
			c := ev
			found = &c
		}
	}

	return found, nil
}
