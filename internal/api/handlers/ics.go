package handlers

import (
	"net/http"

	"github.com/room-booking/backend/internal/api/middleware"
	"github.com/room-booking/backend/internal/ics"
	"github.com/room-booking/backend/internal/storage"
)

// CalendarFeed serves the approved schedule as an iCalendar subscription.
func CalendarFeed(repo *storage.BookingRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := repo.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query bookings")
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="bookings.ics"`)
		w.Write([]byte(ics.Feed(bookings)))
	}
}
