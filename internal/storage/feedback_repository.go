package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/room-booking/backend/internal/storage/models"
)

// FeedbackRepository provides data access for user feedback.
type FeedbackRepository struct {
	BaseRepository
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create inserts a new feedback entry.
func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	if f.ID == "" {
		f.ID = GenerateID()
	}
	f.CreatedAt = r.Now()

	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO feedback (id, user_id, rating, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, f.ID, f.UserID, f.Rating, f.Message, f.CreatedAt)

	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}

	return nil
}

// List retrieves all feedback entries, newest first.
func (r *FeedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT id, user_id, rating, message, created_at
		FROM feedback
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	return r.scanFeedback(rows)
}

func (r *FeedbackRepository) scanFeedback(rows *sql.Rows) ([]models.Feedback, error) {
	var entries []models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Rating, &f.Message, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}
