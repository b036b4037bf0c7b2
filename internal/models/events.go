package models

import "time"

// NATS Event Types
const (
	EventEventPublished   = "event.published"
	EventEventDeleted     = "event.deleted"
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// EventPublishedEvent is emitted when an organiser publishes an event
type EventPublishedEvent struct {
	EventID   int64     `json:"event_id"`
	Title     string    `json:"title"`
	EventDate time.Time `json:"event_date"`
	Timestamp time.Time `json:"timestamp"`
}

// EventDeletedEvent is emitted when an organiser deletes an event
type EventDeletedEvent struct {
	EventID   int64     `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingCreatedEvent is emitted after a booking row is committed
type BookingCreatedEvent struct {
	BookingID     int64     `json:"booking_id"`
	EventID       int64     `json:"event_id"`
	Reference     string    `json:"reference"`
	FullQty       int       `json:"full_qty"`
	ConcessionQty int       `json:"concession_qty"`
	Timestamp     time.Time `json:"timestamp"`
}

// BookingCancelledEvent is emitted after an organiser cancels a booking
type BookingCancelledEvent struct {
	BookingID int64     `json:"booking_id"`
	EventID   int64     `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}
