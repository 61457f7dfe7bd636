package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeBookingCreated       MessageType = "booking.created"
	TypeBookingUpdated       MessageType = "booking.updated"
	TypeBookingStatusChanged MessageType = "booking.status_changed"
	TypeBookingDeleted       MessageType = "booking.deleted"
	TypeBookingReminder      MessageType = "booking.reminder"
	TypeNotification         MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// BookingPayload is the payload for booking.created and booking.deleted
// events.
type BookingPayload struct {
	BookingID string    `json:"booking_id"`
	EventName string    `json:"event_name"`
	Location  string    `json:"location"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

// BookingStatusPayload is the payload for booking.status_changed events.
type BookingStatusPayload struct {
	BookingID      string `json:"booking_id"`
	EventName      string `json:"event_name"`
	Location       string `json:"location"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	VerifiedBy     string `json:"verified_by,omitempty"`
}

// BookingReminderPayload is the payload for booking.reminder events.
type BookingReminderPayload struct {
	BookingID string    `json:"booking_id"`
	EventName string    `json:"event_name"`
	Location  string    `json:"location"`
	StartDate time.Time `json:"start_date"`
	StartsIn  string    `json:"starts_in"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level       string `json:"level"` // info, warning, error, success
	Title       string `json:"title"`
	Message     string `json:"message"`
	Dismissible bool   `json:"dismissible"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	OriginalType string `json:"original_type,omitempty"`
}
