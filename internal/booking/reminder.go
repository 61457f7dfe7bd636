package booking

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/room-booking/backend/internal/storage"
)

// ReminderScheduler periodically looks for approved bookings that are
// about to start and announces them on the live feed. Each booking is
// announced at most once.
type ReminderScheduler struct {
	cron        *cron.Cron
	repo        *storage.BookingRepository
	broadcaster Broadcaster
	spec        string
	lead        time.Duration

	mu       sync.Mutex
	notified map[string]bool
}

// NewReminderScheduler creates a reminder scheduler that runs on the
// given cron spec and looks lead ahead for upcoming bookings.
func NewReminderScheduler(repo *storage.BookingRepository, broadcaster Broadcaster, spec string, lead time.Duration) *ReminderScheduler {
	return &ReminderScheduler{
		cron:        cron.New(),
		repo:        repo,
		broadcaster: broadcaster,
		spec:        spec,
		lead:        lead,
		notified:    make(map[string]bool),
	}
}

// Start begins the reminder sweep.
func (s *ReminderScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Booking reminder scheduler started (spec %q, lead %s)", s.spec, s.lead)
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running sweep
// to finish.
func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Booking reminder scheduler stopped")
}

// sweep announces approved bookings starting within the lead window.
func (s *ReminderScheduler) sweep() {
	ctx := context.Background()
	now := time.Now().UTC()

	upcoming, err := s.repo.ListStartingBetween(ctx, now, now.Add(s.lead))
	if err != nil {
		log.Printf("Failed to list upcoming bookings: %v", err)
		return
	}

	for _, b := range upcoming {
		if !s.markNotified(b.ID) {
			continue
		}

		log.Printf("Booking %s (%s) starts in %s", b.ID, b.EventName, b.StartDate.Sub(now).Round(time.Minute))
		if s.broadcaster != nil {
			s.broadcaster.BroadcastBookingReminder(&b, b.StartDate.Sub(now))
		}
	}

	s.forget(now)
}

// markNotified records a reminder and reports whether it is the first
// one for this booking.
func (s *ReminderScheduler) markNotified(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notified[id] {
		return false
	}
	s.notified[id] = true
	return true
}

// forget drops reminder records for bookings that have already started,
// keeping the set from growing without bound.
func (s *ReminderScheduler) forget(now time.Time) {
	ctx := context.Background()

	s.mu.Lock()
	ids := make([]string, 0, len(s.notified))
	for id := range s.notified {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		b, err := s.repo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		if b == nil || !b.StartDate.After(now) {
			s.mu.Lock()
			delete(s.notified, id)
			s.mu.Unlock()
		}
	}
}
