package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperr "eventdesk/internal/errors"
	"eventdesk/internal/logger"
	"eventdesk/internal/messaging"
	"eventdesk/internal/models"

	"github.com/google/uuid"
)

type BookingStore interface {
	ListForEvent(ctx context.Context, eventID int64) ([]models.Booking, error)
	TotalsForEvent(ctx context.Context, eventID int64) (models.TierTotals, error)
	CreateWithinCapacity(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, eventID, bookingID int64) (bool, error)
}

type BookingService struct {
	bookings BookingStore
	tickets  TicketStore
	nats     *messaging.NATSClient
}

func NewBookingService(bookings BookingStore, tickets TicketStore, natsClient *messaging.NATSClient) *BookingService {
	return &BookingService{
		bookings: bookings,
		tickets:  tickets,
		nats:     natsClient,
	}
}

// AvailabilityFor reads an event's tiers and booked totals and derives the
// remaining availability.
func (s *BookingService) AvailabilityFor(ctx context.Context, eventID int64) (models.TicketMap, models.TierTotals, models.Availability, error) {
	tickets, err := s.tickets.GetForEvent(ctx, eventID)
	if err != nil {
		return models.TicketMap{}, models.TierTotals{}, models.Availability{}, fmt.Errorf("failed to get tickets: %w", err)
	}

	totals, err := s.bookings.TotalsForEvent(ctx, eventID)
	if err != nil {
		return models.TicketMap{}, models.TierTotals{}, models.Availability{}, fmt.Errorf("failed to get booking totals: %w", err)
	}

	ticketMap := models.BuildTicketMap(tickets)
	return ticketMap, totals, ComputeAvailability(ticketMap, totals), nil
}

// Create validates the request against current availability and appends the
// booking. The insert itself re-checks capacity inside a serializable
// transaction, so a concurrent booking that slips past the first check still
// cannot oversell; that late failure surfaces as the same rejection.
func (s *BookingService) Create(ctx context.Context, eventID int64, name string, fullQty, concessionQty int) (*models.Booking, error) {
	_, _, avail, err := s.AvailabilityFor(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := ValidateBooking(name, fullQty, concessionQty, avail); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		EventID:       eventID,
		Reference:     uuid.New().String(),
		AttendeeName:  strings.TrimSpace(name),
		FullQty:       fullQty,
		ConcessionQty: concessionQty,
	}

	if err := s.bookings.CreateWithinCapacity(ctx, booking); err != nil {
		if errors.Is(err, apperr.ErrInsufficientCapacity) {
			return nil, &BookingRejectedError{Reason: RejectExceedsAvailability}
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.nats != nil {
		payload := models.BookingCreatedEvent{
			BookingID:     booking.ID,
			EventID:       booking.EventID,
			Reference:     booking.Reference,
			FullQty:       booking.FullQty,
			ConcessionQty: booking.ConcessionQty,
			Timestamp:     time.Now(),
		}
		if err := s.nats.Publish(models.EventBookingCreated, payload); err != nil {
			logger.WithContext(ctx).Error("Failed to publish booking created message",
				"error", err,
				"booking_id", booking.ID,
				"event_type", models.EventBookingCreated)
		}
	}

	return booking, nil
}

// ListForEvent returns the event's bookings, latest first, with booked totals
func (s *BookingService) ListForEvent(ctx context.Context, eventID int64) ([]models.Booking, models.TierTotals, error) {
	bookings, err := s.bookings.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, models.TierTotals{}, fmt.Errorf("failed to list bookings: %w", err)
	}

	totals, err := s.bookings.TotalsForEvent(ctx, eventID)
	if err != nil {
		return nil, models.TierTotals{}, fmt.Errorf("failed to get booking totals: %w", err)
	}

	return bookings, totals, nil
}

// Cancel deletes a booking scoped to its event. A booking id that does not
// belong to the event deletes nothing and is still a success.
func (s *BookingService) Cancel(ctx context.Context, eventID, bookingID int64) error {
	deleted, err := s.bookings.Delete(ctx, eventID, bookingID)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !deleted {
		return nil
	}

	if s.nats != nil {
		payload := models.BookingCancelledEvent{
			BookingID: bookingID,
			EventID:   eventID,
			Timestamp: time.Now(),
		}
		if err := s.nats.Publish(models.EventBookingCancelled, payload); err != nil {
			logger.WithContext(ctx).Error("Failed to publish booking cancelled message",
				"error", err,
				"booking_id", bookingID,
				"event_type", models.EventBookingCancelled)
		}
	}

	return nil
}
