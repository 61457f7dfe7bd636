package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/room-booking/backend/internal/schedule"
	"github.com/room-booking/backend/internal/storage"
	"github.com/room-booking/backend/internal/storage/models"
)

// Broadcaster publishes booking lifecycle events to connected clients.
// *websocket.EventBroadcaster satisfies it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastBookingCreated(b *models.Booking)
	BroadcastBookingUpdated(b *models.Booking)
	BroadcastBookingStatusChanged(b *models.Booking, previousStatus string)
	BroadcastBookingDeleted(b *models.Booking)
	BroadcastBookingReminder(b *models.Booking, startsIn time.Duration)
}

// Service coordinates booking mutations. All writes that depend on a
// conflict check run the check and the write in one transaction.
type Service struct {
	repo        *storage.BookingRepository
	broadcaster Broadcaster
	locations   []string
}

// NewService creates a booking service. broadcaster may be nil when no
// live feed is wanted.
func NewService(repo *storage.BookingRepository, broadcaster Broadcaster, locations []string) *Service {
	return &Service{
		repo:        repo,
		broadcaster: broadcaster,
		locations:   locations,
	}
}

// CreateRequest carries the fields of a new booking submission.
type CreateRequest struct {
	UserID         string
	ContactName    string
	ContactPhone   string
	OrganizerName  string
	EventName      string
	Location       string
	StartDate      time.Time
	EndDate        time.Time
	LetterURL      *string
	LetterFileName *string
}

// Create validates a submission, checks the requested slot, and stores
// the booking as pending. Returns a *ConflictError when the slot is taken.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	if err := s.validate(req.EventName, req.OrganizerName, req.Location, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	b := &models.Booking{
		UserID:         req.UserID,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		OrganizerName:  req.OrganizerName,
		EventName:      req.EventName,
		Location:       req.Location,
		StartDate:      req.StartDate.UTC(),
		EndDate:        req.EndDate.UTC(),
		LetterURL:      req.LetterURL,
		LetterFileName: req.LetterFileName,
		Status:         models.BookingStatusPending,
	}

	err := s.repo.Transaction(ctx, func(tx *sql.Tx) error {
		conflict, err := s.findConflict(ctx, tx, b.Location, b.StartDate, b.EndDate, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return &ConflictError{Conflicting: *conflict}
		}
		return s.repo.Create(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastBookingCreated(b)
	}

	return b, nil
}

// UpdateRequest carries the editable fields of an existing booking.
type UpdateRequest struct {
	ContactName    string
	ContactPhone   string
	OrganizerName  string
	EventName      string
	Location       string
	StartDate      time.Time
	EndDate        time.Time
	LetterURL      *string
	LetterFileName *string
}

// Update rewrites a booking. Owners may edit their own bookings only
// while pending; admins may edit any booking at any time. The new time
// slot is conflict-checked against every other booking in the same
// transaction as the write.
func (s *Service) Update(ctx context.Context, id, requesterID string, isAdmin bool, req UpdateRequest) (*models.Booking, error) {
	if err := s.validate(req.EventName, req.OrganizerName, req.Location, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.UserID != requesterID && !isAdmin {
		return nil, ErrForbidden
	}
	if !isAdmin && !b.IsPending() {
		return nil, ErrForbidden
	}

	b.ContactName = req.ContactName
	b.ContactPhone = req.ContactPhone
	b.OrganizerName = req.OrganizerName
	b.EventName = req.EventName
	b.Location = req.Location
	b.StartDate = req.StartDate.UTC()
	b.EndDate = req.EndDate.UTC()
	b.LetterURL = req.LetterURL
	b.LetterFileName = req.LetterFileName

	err = s.repo.Transaction(ctx, func(tx *sql.Tx) error {
		conflict, err := s.findConflict(ctx, tx, b.Location, b.StartDate, b.EndDate, b.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &ConflictError{Conflicting: *conflict}
		}
		return s.repo.Update(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastBookingUpdated(b)
	}

	return b, nil
}

// Verify records an admin's decision on a pending booking. The decision
// must be approved or rejected, and a booking can be verified only once.
func (s *Service) Verify(ctx context.Context, id, decision, adminID string) (*models.Booking, error) {
	if decision != models.BookingStatusApproved && decision != models.BookingStatusRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, decision)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if !b.IsPending() {
		return nil, ErrAlreadyVerified
	}

	if err := s.repo.UpdateStatus(ctx, id, decision, adminID); err != nil {
		// Another decision may have landed between the pending check and
		// the write; the status guard on the update catches that.
		if errors.Is(err, storage.ErrNotPending) {
			return nil, ErrAlreadyVerified
		}
		return nil, err
	}

	previous := b.Status
	b.Status = decision
	b.VerifiedBy = &adminID

	if s.broadcaster != nil {
		s.broadcaster.BroadcastBookingStatusChanged(b, previous)
	}

	return b, nil
}

// Delete removes a booking. Owners may delete their own pending
// bookings; admins may delete any booking.
func (s *Service) Delete(ctx context.Context, id, requesterID string, isAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}
	if !isAdmin && (b.UserID != requesterID || !b.IsPending()) {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastBookingDeleted(b)
	}

	return nil
}

// CheckAvailability reports the booking blocking a requested slot, or
// nil when the slot is free. excludeID may name a booking to ignore,
// for reschedule previews.
func (s *Service) CheckAvailability(ctx context.Context, location string, start, end time.Time, excludeID string) (*models.Booking, error) {
	if !s.knownLocation(location) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, location)
	}
	return s.findConflict(ctx, s.repo.DB(), location, start.UTC(), end.UTC(), excludeID)
}

// Get retrieves a booking by ID, returning ErrNotFound when absent.
func (s *Service) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// findConflict loads the blocking bookings overlapping [start, end) at a
// venue and applies the canonical overlap rule, returning the
// earliest-starting one.
func (s *Service) findConflict(ctx context.Context, q storage.Queryable, location string, start, end time.Time, excludeID string) (*models.Booking, error) {
	candidates, err := s.repo.FindOverlapping(ctx, q, location, start, end, excludeID)
	if err != nil {
		return nil, err
	}

	events := make([]schedule.Event, len(candidates))
	for i, c := range candidates {
		events[i] = ToEvent(c)
	}

	hit, err := schedule.CheckConflict(location, start, end, events, excludeID)
	if err != nil {
		return nil, err
	}
	if hit == nil {
		return nil, nil
	}

	for i := range candidates {
		if candidates[i].ID == hit.ID {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// ToEvent projects a stored booking onto the scheduling engine's event type.
func ToEvent(b models.Booking) schedule.Event {
	return schedule.Event{
		ID:            b.ID,
		Location:      b.Location,
		Start:         b.StartDate,
		End:           b.EndDate,
		Status:        schedule.Status(b.Status),
		EventName:     b.EventName,
		OrganizerName: b.OrganizerName,
	}
}

func (s *Service) validate(eventName, organizerName, location string, start, end time.Time) error {
	if strings.TrimSpace(eventName) == "" {
		return fmt.Errorf("%w: event name", ErrMissingField)
	}
	if strings.TrimSpace(organizerName) == "" {
		return fmt.Errorf("%w: organizer name", ErrMissingField)
	}
	if !s.knownLocation(location) {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, location)
	}
	if !start.Before(end) {
		return schedule.ErrInvalidInterval
	}
	return nil
}

func (s *Service) knownLocation(location string) bool {
	for _, l := range s.locations {
		if l == location {
			return true
		}
	}
	return false
}
