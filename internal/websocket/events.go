package websocket

import (
	"log"
	"time"

	"github.com/room-booking/backend/internal/storage/models"
)

// EventBroadcaster publishes booking lifecycle events to the hub.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastBookingCreated sends a booking.created event.
func (b *EventBroadcaster) BroadcastBookingCreated(booking *models.Booking) {
	msg := NewMessage(TypeBookingCreated, bookingPayload(booking))
	b.broadcast(msg)
}

// BroadcastBookingUpdated sends a booking.updated event after a
// reschedule or detail edit.
func (b *EventBroadcaster) BroadcastBookingUpdated(booking *models.Booking) {
	msg := NewMessage(TypeBookingUpdated, bookingPayload(booking))
	b.broadcast(msg)
}

// BroadcastBookingStatusChanged sends a booking.status_changed event.
func (b *EventBroadcaster) BroadcastBookingStatusChanged(booking *models.Booking, previousStatus string) {
	payload := BookingStatusPayload{
		BookingID:      booking.ID,
		EventName:      booking.EventName,
		Location:       booking.Location,
		PreviousStatus: previousStatus,
		NewStatus:      booking.Status,
	}
	if booking.VerifiedBy != nil {
		payload.VerifiedBy = *booking.VerifiedBy
	}

	msg := NewMessage(TypeBookingStatusChanged, payload)
	b.broadcast(msg)
}

// BroadcastBookingDeleted sends a booking.deleted event.
func (b *EventBroadcaster) BroadcastBookingDeleted(booking *models.Booking) {
	msg := NewMessage(TypeBookingDeleted, bookingPayload(booking))
	b.broadcast(msg)
}

// BroadcastBookingReminder sends a booking.reminder event for an approved
// booking that is about to start.
func (b *EventBroadcaster) BroadcastBookingReminder(booking *models.Booking, startsIn time.Duration) {
	payload := BookingReminderPayload{
		BookingID: booking.ID,
		EventName: booking.EventName,
		Location:  booking.Location,
		StartDate: booking.StartDate,
		StartsIn:  startsIn.Round(time.Minute).String(),
	}

	msg := NewMessage(TypeBookingReminder, payload)
	b.broadcast(msg)
}

// BroadcastNotification sends a notification to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(level, title, message string) {
	payload := NotificationPayload{
		Level:       level,
		Title:       title,
		Message:     message,
		Dismissible: true,
	}

	msg := NewMessage(TypeNotification, payload)
	b.broadcast(msg)
}

func bookingPayload(booking *models.Booking) BookingPayload {
	return BookingPayload{
		BookingID: booking.ID,
		EventName: booking.EventName,
		Location:  booking.Location,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
		Status:    booking.Status,
	}
}

func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}
