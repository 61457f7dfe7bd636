package schedule

import "time"

// Status is the lifecycle state of a reservation as the engine sees it.
// Rejected reservations never participate in conflict checks.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Event is the read-only projection of a reservation that the engine
// operates on. EventName and OrganizerName are pass-through metadata used
// by callers to render a human-readable conflict explanation; the engine
// itself only looks at ID, Location, Start, End and Status.
type Event struct {
	ID            string
	Location      string
	Start         time.Time
	End           time.Time
	Status        Status
	EventName     string
	OrganizerName string
}

// MultiDay reports whether the event spans more than one calendar day.
func (e Event) MultiDay() bool {
	return !SameDay(e.Start, e.End)
}
