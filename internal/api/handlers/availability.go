package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/room-booking/backend/internal/api/middleware"
	"github.com/room-booking/backend/internal/booking"
)

// AvailabilityResponse reports whether a time slot is free and, when it
// is not, which booking blocks it.
type AvailabilityResponse struct {
	Available bool             `json:"available"`
	Conflict  *BookingResponse `json:"conflict,omitempty"`
}

// CheckAvailability reports whether a venue is free for a requested slot.
// Query parameters: location, start, end (RFC 3339), and an optional
// exclude booking ID for reschedule previews.
func CheckAvailability(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		location := q.Get("location")
		start, err := time.Parse(time.RFC3339, q.Get("start"))
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "start must be an RFC 3339 timestamp")
			return
		}
		end, err := time.Parse(time.RFC3339, q.Get("end"))
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "end must be an RFC 3339 timestamp")
			return
		}

		conflict, err := svc.CheckAvailability(r.Context(), location, start, end, q.Get("exclude"))
		if err != nil {
			writeBookingError(w, err)
			return
		}

		response := AvailabilityResponse{Available: conflict == nil}
		if conflict != nil {
			blocked := newBookingResponse(*conflict)
			response.Conflict = &blocked
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
