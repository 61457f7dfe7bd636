// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/room-booking/backend/internal/api/handlers"
	"github.com/room-booking/backend/internal/api/middleware"
	"github.com/room-booking/backend/internal/booking"
	"github.com/room-booking/backend/internal/storage"
	"github.com/room-booking/backend/internal/websocket"
)

// Deps carries everything the routes need.
type Deps struct {
	DB            *storage.DB
	BookingRepo   *storage.BookingRepository
	FeedbackRepo  *storage.FeedbackRepository
	Service       *booking.Service
	Hub           *websocket.Hub
	Authenticator *middleware.Authenticator
	LaneCount     int
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(d.DB)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(d.Hub)).Methods("GET")

	// Public calendar views and subscription feed
	api.HandleFunc("/calendar/month", handlers.MonthView(d.BookingRepo, d.LaneCount)).Methods("GET")
	api.HandleFunc("/calendar/week", handlers.WeekView(d.BookingRepo)).Methods("GET")
	api.HandleFunc("/calendar/day", handlers.DayView(d.BookingRepo)).Methods("GET")
	api.HandleFunc("/calendar.ics", handlers.CalendarFeed(d.BookingRepo)).Methods("GET")
	api.HandleFunc("/check-availability", handlers.CheckAvailability(d.Service)).Methods("GET")

	// Booking endpoints (authenticated)
	user := api.NewRoute().Subrouter()
	user.Use(d.Authenticator.RequireUser)
	user.HandleFunc("/bookings", handlers.ListBookings(d.BookingRepo)).Methods("GET")
	user.HandleFunc("/bookings", handlers.CreateBooking(d.Service)).Methods("POST")
	user.HandleFunc("/bookings/{id}", handlers.GetBooking(d.Service)).Methods("GET")
	user.HandleFunc("/bookings/{id}", handlers.UpdateBooking(d.Service)).Methods("PUT")
	user.HandleFunc("/bookings/{id}", handlers.DeleteBooking(d.Service)).Methods("DELETE")
	user.HandleFunc("/feedback", handlers.CreateFeedback(d.FeedbackRepo)).Methods("POST")

	// Admin endpoints
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(d.Authenticator.RequireAdmin)
	admin.HandleFunc("/status", handlers.Status(d.BookingRepo, d.Hub)).Methods("GET")
	admin.HandleFunc("/bookings/{id}/verify", handlers.VerifyBooking(d.Service)).Methods("POST")
	admin.HandleFunc("/feedback", handlers.ListFeedback(d.FeedbackRepo)).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Route not found")
	})

	return r
}
