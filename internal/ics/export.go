// Package ics renders the approved booking schedule as an iCalendar
// feed, so the venue calendar can be subscribed to from external
// calendar clients.
package ics

import (
	"fmt"

	ical "github.com/arran4/golang-ical"

	"github.com/room-booking/backend/internal/storage/models"
)

const productID = "-//room-booking//backend//EN"

// Feed serializes the approved bookings as an iCalendar document.
// Pending and rejected bookings are left out: the feed is the published
// schedule, not the review queue.
func Feed(bookings []models.Booking) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, b := range bookings {
		if !b.IsApproved() {
			continue
		}

		event := cal.AddEvent(b.ID)
		event.SetCreatedTime(b.CreatedAt)
		event.SetDtStampTime(b.UpdatedAt)
		event.SetStartAt(b.StartDate)
		event.SetEndAt(b.EndDate)
		event.SetSummary(b.EventName)
		event.SetLocation(models.LocationDisplayName(b.Location))
		event.SetDescription(fmt.Sprintf("Organized by %s", b.OrganizerName))
	}

	return cal.Serialize()
}
