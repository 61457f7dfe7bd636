package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/room-booking/backend/internal/storage/models"
)

// ErrNotPending reports that a status decision matched no pending
// booking, either because the booking is gone or a decision was already
// recorded.
var ErrNotPending = errors.New("booking is not pending")

const bookingColumns = `id, user_id, contact_name, contact_phone, organizer_name, event_name,
       location, start_date, end_date, letter_url, letter_file_name, status, verified_by,
       created_at, updated_at`

// BookingRepository provides data access for bookings.
type BookingRepository struct {
	BaseRepository
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create inserts a new booking. It accepts a Queryable so the insert can
// run in the same transaction as the conflict check that cleared it.
func (r *BookingRepository) Create(ctx context.Context, q Queryable, b *models.Booking) error {
	if b.ID == "" {
		b.ID = GenerateID()
	}
	b.CreatedAt = r.Now()
	b.UpdatedAt = b.CreatedAt
	if b.Status == "" {
		b.Status = models.BookingStatusPending
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO bookings (
			id, user_id, contact_name, contact_phone, organizer_name, event_name,
			location, start_date, end_date, letter_url, letter_file_name, status,
			verified_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID, b.UserID, b.ContactName, b.ContactPhone, b.OrganizerName, b.EventName,
		b.Location, b.StartDate, b.EndDate, b.LetterURL, b.LetterFileName, b.Status,
		b.VerifiedBy, b.CreatedAt, b.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by its ID. Returns nil without an error
// when the booking does not exist.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b := &models.Booking{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings WHERE id = ?
	`, id).Scan(
		&b.ID, &b.UserID, &b.ContactName, &b.ContactPhone, &b.OrganizerName, &b.EventName,
		&b.Location, &b.StartDate, &b.EndDate, &b.LetterURL, &b.LetterFileName, &b.Status,
		&b.VerifiedBy, &b.CreatedAt, &b.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying booking: %w", err)
	}

	return b, nil
}

// List retrieves all bookings, newest first.
func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListByUser retrieves all bookings submitted by a user, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying bookings by user: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListByStatus retrieves all bookings with a specific status.
func (r *BookingRepository) ListByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE status = ?
		ORDER BY start_date
	`, status)
	if err != nil {
		return nil, fmt.Errorf("querying bookings by status: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListBetween retrieves bookings whose time range intersects the
// half-open window [start, end). Used by the calendar views.
func (r *BookingRepository) ListBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE start_date < ? AND end_date > ?
		ORDER BY start_date
	`, end, start)
	if err != nil {
		return nil, fmt.Errorf("querying bookings in window: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListStartingBetween retrieves approved bookings that start inside the
// half-open window [start, end). The reminder scheduler uses this to find
// bookings that are about to begin.
func (r *BookingRepository) ListStartingBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE status = ? AND start_date >= ? AND start_date < ?
		ORDER BY start_date
	`, models.BookingStatusApproved, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying upcoming bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// FindOverlapping retrieves blocking bookings at a venue whose time range
// intersects the half-open interval [start, end). Two intervals overlap
// when each starts before the other ends; touching endpoints do not count.
// It accepts a Queryable so callers can run the check inside the same
// transaction as the write it guards.
func (r *BookingRepository) FindOverlapping(ctx context.Context, q Queryable, location string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE location = ?
		  AND id != ?
		  AND start_date < ?
		  AND end_date > ?
		  AND status != ?
		ORDER BY start_date, id
	`, location, excludeID, end, start, models.BookingStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("querying overlapping bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Update rewrites the mutable fields of a booking. It accepts a Queryable
// so reschedules can share a transaction with their conflict check.
func (r *BookingRepository) Update(ctx context.Context, q Queryable, b *models.Booking) error {
	b.UpdatedAt = r.Now()

	result, err := q.ExecContext(ctx, `
		UPDATE bookings SET
			contact_name = ?, contact_phone = ?, organizer_name = ?, event_name = ?,
			location = ?, start_date = ?, end_date = ?, letter_url = ?,
			letter_file_name = ?, status = ?, verified_by = ?, updated_at = ?
		WHERE id = ?
	`,
		b.ContactName, b.ContactPhone, b.OrganizerName, b.EventName,
		b.Location, b.StartDate, b.EndDate, b.LetterURL,
		b.LetterFileName, b.Status, b.VerifiedBy, b.UpdatedAt, b.ID,
	)

	if err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("booking not found: %s", b.ID)
	}

	return nil
}

// UpdateStatus records a decision on a pending booking. The status guard
// in the WHERE clause makes the decision single-shot even under
// concurrent calls; a non-pending or missing booking yields ErrNotPending.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id, status, verifiedBy string) error {
	result, err := r.DB().ExecContext(ctx, `
		UPDATE bookings SET status = ?, verified_by = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, status, verifiedBy, r.Now(), id, models.BookingStatusPending)

	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotPending)
	}

	return nil
}

// Delete removes a booking by ID.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB().ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("booking not found: %s", id)
	}

	return nil
}

// CountByStatus returns the number of bookings in each status.
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT status, COUNT(*) FROM bookings GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("counting bookings: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning booking count: %w", err)
		}
		counts[status] = n
	}

	return counts, rows.Err()
}

func (r *BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.ContactName, &b.ContactPhone, &b.OrganizerName, &b.EventName,
			&b.Location, &b.StartDate, &b.EndDate, &b.LetterURL, &b.LetterFileName, &b.Status,
			&b.VerifiedBy, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
