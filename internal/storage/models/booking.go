// Package models defines the data structures stored in the database.
package models

import "time"

// Booking status lifecycle: every booking starts pending and is moved
// to approved or rejected exactly once by an admin.
const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

// Venue identifiers for the two bookable halls.
const (
	LocationAulaLantai1 = "aula-lantai-1"
	LocationAulaLantai2 = "aula-lantai-2"
)

// Booking represents a reservation request for a venue.
type Booking struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ContactName    string    `json:"contact_name"`
	ContactPhone   string    `json:"contact_phone"`
	OrganizerName  string    `json:"organizer_name"`
	EventName      string    `json:"event_name"`
	Location       string    `json:"location"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	LetterURL      *string   `json:"letter_url,omitempty"`
	LetterFileName *string   `json:"letter_file_name,omitempty"`
	Status         string    `json:"status"`
	VerifiedBy     *string   `json:"verified_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsPending reports whether the booking is still awaiting verification.
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsApproved reports whether the booking has been approved.
func (b *Booking) IsApproved() bool {
	return b.Status == BookingStatusApproved
}

// Blocking reports whether the booking occupies its time slot for
// conflict purposes. Rejected bookings free their slot.
func (b *Booking) Blocking() bool {
	return b.Status != BookingStatusRejected
}

// EventColor is the display color bucket for a booking on the calendar.
type EventColor string

const (
	ColorYellow EventColor = "yellow"
	ColorRed    EventColor = "red"
	ColorBlue   EventColor = "blue"
	ColorGreen  EventColor = "green"
	ColorPurple EventColor = "purple"
)

// Color maps the booking's status and venue to its calendar color.
// Pending is always yellow and rejected always red; approved bookings
// take the venue color, with purple for any venue outside the known set.
func (b *Booking) Color() EventColor {
	switch b.Status {
	case BookingStatusPending:
		return ColorYellow
	case BookingStatusRejected:
		return ColorRed
	default:
		switch b.Location {
		case LocationAulaLantai1:
			return ColorBlue
		case LocationAulaLantai2:
			return ColorGreen
		default:
			return ColorPurple
		}
	}
}

// LocationDisplayName returns the human-readable name of a venue.
// Unknown identifiers are returned as-is.
func LocationDisplayName(location string) string {
	switch location {
	case LocationAulaLantai1:
		return "Aula Lantai 1"
	case LocationAulaLantai2:
		return "Aula Lantai 2"
	default:
		return location
	}
}
