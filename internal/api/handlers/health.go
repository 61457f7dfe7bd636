// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/room-booking/backend/internal/storage"
	"github.com/room-booking/backend/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_connected"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.Ping() == nil

		status := "healthy"
		if !dbConnected {
			status = "degraded"
		}

		response := HealthResponse{
			Status:      status,
			DBConnected: dbConnected,
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	PendingBookings  int `json:"pending_bookings"`
	ApprovedBookings int `json:"approved_bookings"`
	RejectedBookings int `json:"rejected_bookings"`
	ConnectedClients int `json:"connected_clients"`
}

// Status returns a handler that provides booking counts and live feed
// connection numbers for the admin dashboard.
func Status(repo *storage.BookingRepository, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := repo.CountByStatus(r.Context())
		if err != nil {
			http.Error(w, "counting bookings", http.StatusInternalServerError)
			return
		}

		response := StatusResponse{
			PendingBookings:  counts["pending"],
			ApprovedBookings: counts["approved"],
			RejectedBookings: counts["rejected"],
			ConnectedClients: hub.ClientCount(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
