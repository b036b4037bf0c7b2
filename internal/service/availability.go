package service

import (
	"strings"

	"eventdesk/internal/models"
)

// BookingErrorMessage is the single user-facing message for every booking
// rejection. The internal reason stays in BookingRejectedError.
const BookingErrorMessage = "Add your name and a valid ticket quantity."

type RejectReason string

const (
	RejectEmptyName           RejectReason = "empty_name"
	RejectInvalidQuantity     RejectReason = "invalid_quantity"
	RejectNoTicketsRequested  RejectReason = "no_tickets_requested"
	RejectExceedsAvailability RejectReason = "exceeds_availability"
)

// BookingRejectedError tags why a booking was refused. Tier is set only for
// exceeds-availability rejections.
type BookingRejectedError struct {
	Reason RejectReason
	Tier   string
}

func (e *BookingRejectedError) Error() string {
	if e.Tier != "" {
		return "booking rejected: " + string(e.Reason) + " (" + e.Tier + ")"
	}
	return "booking rejected: " + string(e.Reason)
}

// ComputeAvailability derives the remaining seats per tier, floored at zero.
// Pure and total: oversold tiers yield 0, never a negative count.
func ComputeAvailability(tickets models.TicketMap, totals models.TierTotals) models.Availability {
	return models.Availability{
		Full:       nonNegative(tickets.Full.Capacity - totals.Full),
		Concession: nonNegative(tickets.Concession.Capacity - totals.Concession),
	}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ValidateBooking gates booking insertion. Checks run in a fixed order and
// the first failure wins: empty name, negative quantity, no tickets
// requested, quantity over availability.
func ValidateBooking(name string, fullQty, concessionQty int, avail models.Availability) error {
	if strings.TrimSpace(name) == "" {
		return &BookingRejectedError{Reason: RejectEmptyName}
	}
	if fullQty < 0 || concessionQty < 0 {
		return &BookingRejectedError{Reason: RejectInvalidQuantity}
	}
	if fullQty+concessionQty == 0 {
		return &BookingRejectedError{Reason: RejectNoTicketsRequested}
	}
	if fullQty > avail.Full {
		return &BookingRejectedError{Reason: RejectExceedsAvailability, Tier: models.TierFull}
	}
	if concessionQty > avail.Concession {
		return &BookingRejectedError{Reason: RejectExceedsAvailability, Tier: models.TierConcession}
	}
	return nil
}
