package service

import (
	"testing"

	"eventdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAvailability(t *testing.T) {
	tickets := models.TicketMap{
		Full:       models.Tier{PriceCents: 500, Capacity: 10},
		Concession: models.Tier{PriceCents: 300, Capacity: 5},
	}

	avail := ComputeAvailability(tickets, models.TierTotals{Full: 3, Concession: 0})
	assert.Equal(t, 7, avail.Full)
	assert.Equal(t, 5, avail.Concession)
}

func TestComputeAvailabilityFloorsAtZero(t *testing.T) {
	tickets := models.TicketMap{
		Full:       models.Tier{Capacity: 2},
		Concession: models.Tier{Capacity: 0},
	}

	// Booked totals above capacity must never produce a negative count.
	avail := ComputeAvailability(tickets, models.TierTotals{Full: 5, Concession: 1})
	assert.Equal(t, 0, avail.Full)
	assert.Equal(t, 0, avail.Concession)
}

func TestComputeAvailabilityZeroCapacity(t *testing.T) {
	avail := ComputeAvailability(models.TicketMap{}, models.TierTotals{})
	assert.Equal(t, 0, avail.Full)
	assert.Equal(t, 0, avail.Concession)
}

func TestBuildTicketMapDefaultsMissingTier(t *testing.T) {
	tm := models.BuildTicketMap([]models.Ticket{
		{Type: models.TierFull, PriceCents: 500, Capacity: 10},
	})

	assert.Equal(t, 10, tm.Full.Capacity)
	assert.Equal(t, 0, tm.Concession.Capacity)
	assert.Equal(t, 0, tm.Concession.PriceCents)
}

func TestValidateBookingAccepts(t *testing.T) {
	avail := models.Availability{Full: 10, Concession: 5}

	assert.NoError(t, ValidateBooking("Alice", 3, 0, avail))
	assert.NoError(t, ValidateBooking("Bob", 10, 5, avail))
	assert.NoError(t, ValidateBooking("Carol", 0, 1, avail))
}

func TestValidateBookingRejections(t *testing.T) {
	avail := models.Availability{Full: 10, Concession: 5}

	tests := []struct {
		name          string
		attendee      string
		fullQty       int
		concessionQty int
		reason        RejectReason
		tier          string
	}{
		{"empty name", "", 1, 0, RejectEmptyName, ""},
		{"whitespace name", "   ", 1, 0, RejectEmptyName, ""},
		{"negative full", "Alice", -1, 2, RejectInvalidQuantity, ""},
		{"negative concession", "Alice", 2, -1, RejectInvalidQuantity, ""},
		{"no tickets", "Alice", 0, 0, RejectNoTicketsRequested, ""},
		{"full over availability", "Alice", 11, 0, RejectExceedsAvailability, models.TierFull},
		{"concession over availability", "Alice", 0, 6, RejectExceedsAvailability, models.TierConcession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBooking(tt.attendee, tt.fullQty, tt.concessionQty, avail)
			require.Error(t, err)

			var rejected *BookingRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.reason, rejected.Reason)
			assert.Equal(t, tt.tier, rejected.Tier)
		})
	}
}

func TestValidateBookingChecksNameFirst(t *testing.T) {
	// A request that fails several checks reports the first one.
	err := ValidateBooking("", -1, 0, models.Availability{})

	var rejected *BookingRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, RejectEmptyName, rejected.Reason)
}
