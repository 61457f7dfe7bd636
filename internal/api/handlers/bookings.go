package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/room-booking/backend/internal/api/middleware"
	"github.com/room-booking/backend/internal/booking"
	"github.com/room-booking/backend/internal/schedule"
	"github.com/room-booking/backend/internal/storage"
	"github.com/room-booking/backend/internal/storage/models"
)

// BookingResponse represents a booking in API responses.
type BookingResponse struct {
	models.Booking
	Color        models.EventColor `json:"color"`
	LocationName string            `json:"location_name"`
}

func newBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		Booking:      b,
		Color:        b.Color(),
		LocationName: models.LocationDisplayName(b.Location),
	}
}

func bookingResponses(bookings []models.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = newBookingResponse(b)
	}
	return responses
}

// bookingRequest is the JSON body for booking submissions and edits.
// Times are RFC 3339.
type bookingRequest struct {
	ContactName    string    `json:"contact_name"`
	ContactPhone   string    `json:"contact_phone"`
	OrganizerName  string    `json:"organizer_name"`
	EventName      string    `json:"event_name"`
	Location       string    `json:"location"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	LetterURL      *string   `json:"letter_url"`
	LetterFileName *string   `json:"letter_file_name"`
}

// ListBookings returns the caller's bookings, or every booking for admins.
func ListBookings(repo *storage.BookingRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.UserFrom(r.Context())

		var (
			bookings []models.Booking
			err      error
		)
		if user.IsAdmin() {
			if status := r.URL.Query().Get("status"); status != "" {
				bookings, err = repo.ListByStatus(r.Context(), status)
			} else {
				bookings, err = repo.List(r.Context())
			}
		} else {
			bookings, err = repo.ListByUser(r.Context(), user.ID)
		}
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query bookings")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bookingResponses(bookings))
	}
}

// CreateBooking submits a new booking for the authenticated user.
func CreateBooking(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.UserFrom(r.Context())

		var req bookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		b, err := svc.Create(r.Context(), booking.CreateRequest{
			UserID:         user.ID,
			ContactName:    req.ContactName,
			ContactPhone:   req.ContactPhone,
			OrganizerName:  req.OrganizerName,
			EventName:      req.EventName,
			Location:       req.Location,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			LetterURL:      req.LetterURL,
			LetterFileName: req.LetterFileName,
		})
		if err != nil {
			writeBookingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newBookingResponse(*b))
	}
}

// GetBooking returns a single booking by ID.
func GetBooking(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		b, err := svc.Get(r.Context(), id)
		if err != nil {
			writeBookingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(newBookingResponse(*b))
	}
}

// UpdateBooking edits a booking's details or time slot.
func UpdateBooking(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.UserFrom(r.Context())
		id := mux.Vars(r)["id"]

		var req bookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		b, err := svc.Update(r.Context(), id, user.ID, user.IsAdmin(), booking.UpdateRequest{
			ContactName:    req.ContactName,
			ContactPhone:   req.ContactPhone,
			OrganizerName:  req.OrganizerName,
			EventName:      req.EventName,
			Location:       req.Location,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			LetterURL:      req.LetterURL,
			LetterFileName: req.LetterFileName,
		})
		if err != nil {
			writeBookingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(newBookingResponse(*b))
	}
}

// DeleteBooking removes a booking.
func DeleteBooking(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.UserFrom(r.Context())
		id := mux.Vars(r)["id"]

		if err := svc.Delete(r.Context(), id, user.ID, user.IsAdmin()); err != nil {
			writeBookingError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// VerifyBooking records an admin's approve or reject decision.
func VerifyBooking(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.UserFrom(r.Context())
		id := mux.Vars(r)["id"]

		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		b, err := svc.Verify(r.Context(), id, req.Status, user.ID)
		if err != nil {
			writeBookingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(newBookingResponse(*b))
	}
}

// writeBookingError maps service errors to API error responses.
func writeBookingError(w http.ResponseWriter, err error) {
	var conflict *booking.ConflictError

	switch {
	case errors.As(err, &conflict):
		middleware.WriteErrorWithDetails(w, http.StatusConflict, middleware.ErrConflict,
			err.Error(), newBookingResponse(conflict.Conflicting))
	case errors.Is(err, booking.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Booking not found")
	case errors.Is(err, booking.ErrForbidden):
		middleware.WriteError(w, http.StatusForbidden, middleware.ErrForbidden, "Not allowed to modify this booking")
	case errors.Is(err, booking.ErrAlreadyVerified):
		middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, "Booking has already been verified")
	case errors.Is(err, booking.ErrUnknownLocation),
		errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, booking.ErrMissingField),
		errors.Is(err, schedule.ErrInvalidInterval):
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
	default:
		middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "An unexpected error occurred")
	}
}
