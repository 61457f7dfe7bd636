package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/room-booking/backend/internal/api/middleware"
	"github.com/room-booking/backend/internal/storage"
	"github.com/room-booking/backend/internal/storage/models"
)

// CreateFeedback stores a rating and comment from the authenticated user.
func CreateFeedback(repo *storage.FeedbackRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.UserFrom(r.Context())

		var req struct {
			Rating  int    `json:"rating"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		if req.Rating < 1 || req.Rating > 5 {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Rating must be between 1 and 5")
			return
		}

		f := &models.Feedback{
			UserID:  user.ID,
			Rating:  req.Rating,
			Message: req.Message,
		}
		if err := repo.Create(r.Context(), f); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to store feedback")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(f)
	}
}

// ListFeedback returns all feedback entries for the admin dashboard.
func ListFeedback(repo *storage.FeedbackRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := repo.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query feedback")
			return
		}

		if entries == nil {
			entries = []models.Feedback{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}
