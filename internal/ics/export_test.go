package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/room-booking/backend/internal/storage/models"
)

func booking(id, name, status string) models.Booking {
	return models.Booking{
		ID:            id,
		EventName:     name,
		OrganizerName: "Student Council",
		Location:      models.LocationAulaLantai1,
		StartDate:     time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC),
		Status:        status,
		CreatedAt:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestFeedContainsApprovedBookings(t *testing.T) {
	feed := Feed([]models.Booking{
		booking("b1", "Planning Meeting", models.BookingStatusApproved),
	})

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"UID:b1",
		"SUMMARY:Planning Meeting",
		"LOCATION:Aula Lantai 1",
		"DTSTART:20250312T090000Z",
		"DTEND:20250312T110000Z",
		"END:VCALENDAR",
	} {
		if !strings.Contains(feed, want) {
			t.Errorf("feed missing %q:\n%s", want, feed)
		}
	}
}

func TestFeedSkipsUnapprovedBookings(t *testing.T) {
	feed := Feed([]models.Booking{
		booking("b1", "Pending Meeting", models.BookingStatusPending),
		booking("b2", "Rejected Meeting", models.BookingStatusRejected),
	})

	if strings.Contains(feed, "BEGIN:VEVENT") {
		t.Errorf("unapproved bookings leaked into the feed:\n%s", feed)
	}
}
