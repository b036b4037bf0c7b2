package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventdesk/internal/database"
	apperr "eventdesk/internal/errors"
	"eventdesk/internal/models"

	"github.com/lib/pq"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) ListForEvent(ctx context.Context, eventID int64) ([]models.Booking, error) {
	query := `
		SELECT booking_id, event_id, reference, attendee_name, full_qty, concession_qty, created_at
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.EventID,
			&booking.Reference,
			&booking.AttendeeName,
			&booking.FullQty,
			&booking.ConcessionQty,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) TotalsForEvent(ctx context.Context, eventID int64) (models.TierTotals, error) {
	var totals models.TierTotals
	query := `
		SELECT COALESCE(SUM(full_qty), 0), COALESCE(SUM(concession_qty), 0)
		FROM bookings
		WHERE event_id = $1`

	err := r.db.QueryRowContext(ctx, query, eventID).Scan(&totals.Full, &totals.Concession)
	return totals, err
}

// CreateWithinCapacity inserts the booking inside a serializable transaction
// that re-reads capacities and booked totals, so two concurrent bookings
// cannot jointly oversell a tier. Serialization conflicts are retried.
func (r *BookingRepository) CreateWithinCapacity(ctx context.Context, booking *models.Booking) error {
	const maxRetries = 3
	const backoffDelay = 50 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := r.createOnce(ctx, booking)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}

		lastErr = err
		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt) * backoffDelay)
		}
	}

	return fmt.Errorf("booking insert failed after %d attempts: %w", maxRetries, lastErr)
}

func (r *BookingRepository) createOnce(ctx context.Context, booking *models.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	capacityQuery := `
		SELECT
		    COALESCE((SELECT capacity FROM tickets WHERE event_id = $1 AND ticket_type = 'full'), 0),
		    COALESCE((SELECT capacity FROM tickets WHERE event_id = $1 AND ticket_type = 'concession'), 0),
		    COALESCE((SELECT SUM(full_qty) FROM bookings WHERE event_id = $1), 0),
		    COALESCE((SELECT SUM(concession_qty) FROM bookings WHERE event_id = $1), 0)`

	var fullCap, concessionCap, fullBooked, concessionBooked int
	err = tx.QueryRowContext(ctx, capacityQuery, booking.EventID).Scan(
		&fullCap, &concessionCap, &fullBooked, &concessionBooked)
	if err != nil {
		return fmt.Errorf("failed to read availability: %w", err)
	}

	if booking.FullQty > fullCap-fullBooked || booking.ConcessionQty > concessionCap-concessionBooked {
		return apperr.ErrInsufficientCapacity
	}

	insertQuery := `
		INSERT INTO bookings (event_id, reference, attendee_name, full_qty, concession_qty)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING booking_id, created_at`

	err = tx.QueryRowContext(ctx, insertQuery,
		booking.EventID,
		booking.Reference,
		booking.AttendeeName,
		booking.FullQty,
		booking.ConcessionQty,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// isSerializationFailure reports whether err is a Postgres serialization
// conflict (SQLSTATE 40001), the only error worth retrying here.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001"
	}
	return false
}

// Delete removes a booking filtered by both ids so a mismatched pair cannot
// delete a booking belonging to another event. Zero rows is not an error.
func (r *BookingRepository) Delete(ctx context.Context, eventID, bookingID int64) (bool, error) {
	query := `DELETE FROM bookings WHERE booking_id = $1 AND event_id = $2`

	result, err := r.db.ExecContext(ctx, query, bookingID, eventID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
