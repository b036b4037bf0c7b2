package repository

import (
	"context"
	"database/sql"
	"fmt"

	"eventdesk/internal/database"
	"eventdesk/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateDraft inserts a placeholder draft event together with its two zero
// ticket rows in a single transaction.
func (r *EventRepository) CreateDraft(ctx context.Context) (*models.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	event := &models.Event{
		Title:       "Untitled event",
		Description: "Add details here.",
		Status:      models.StatusDraft,
	}

	insertEvent := `
		INSERT INTO events (title, description, event_date, status)
		VALUES ($1, $2, CURRENT_DATE, 'draft')
		RETURNING event_id, event_date, created_at, updated_at`

	err = tx.QueryRowContext(ctx, insertEvent, event.Title, event.Description).Scan(
		&event.ID,
		&event.EventDate,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	insertTickets := `
		INSERT INTO tickets (event_id, ticket_type, price_cents, capacity)
		VALUES ($1, 'full', 0, 0), ($1, 'concession', 0, 0)`

	if _, err := tx.ExecContext(ctx, insertTickets, event.ID); err != nil {
		return nil, fmt.Errorf("failed to insert default tickets: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return event, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return r.getOne(ctx, `
		SELECT event_id, title, description, event_date, status, created_at, updated_at, published_at
		FROM events
		WHERE event_id = $1`, id)
}

// GetPublished resolves an event only when it is published; drafts behave as
// absent for attendee routes.
func (r *EventRepository) GetPublished(ctx context.Context, id int64) (*models.Event, error) {
	return r.getOne(ctx, `
		SELECT event_id, title, description, event_date, status, created_at, updated_at, published_at
		FROM events
		WHERE event_id = $1 AND status = 'published'`, id)
}

func (r *EventRepository) getOne(ctx context.Context, query string, id int64) (*models.Event, error) {
	event := &models.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.PublishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

func (r *EventRepository) ListPublished(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT event_id, title, description, event_date, status, created_at, updated_at, published_at
		FROM events
		WHERE status = 'published'
		ORDER BY event_date ASC`

	return r.list(ctx, query)
}

// SearchPublished is the SQL fallback for attendee text search when the
// Elasticsearch client is unavailable.
func (r *EventRepository) SearchPublished(ctx context.Context, q string) ([]models.Event, error) {
	query := `
		SELECT event_id, title, description, event_date, status, created_at, updated_at, published_at
		FROM events
		WHERE status = 'published'
		  AND (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY event_date ASC`

	return r.list(ctx, query, q)
}

func (r *EventRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.EventDate,
			&event.Status,
			&event.CreatedAt,
			&event.UpdatedAt,
			&event.PublishedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// ListSummaries returns events in the given status with their ticket values
// and booked totals. Scalar subqueries are used on purpose: a join over both
// tickets and bookings would double-count the booked sums.
func (r *EventRepository) ListSummaries(ctx context.Context, status string) ([]models.EventSummary, error) {
	query := `
		SELECT e.event_id, e.title, e.description, e.event_date, e.status,
		       e.created_at, e.updated_at, e.published_at,
		       COALESCE((SELECT t.capacity FROM tickets t WHERE t.event_id = e.event_id AND t.ticket_type = 'full'), 0),
		       COALESCE((SELECT t.price_cents FROM tickets t WHERE t.event_id = e.event_id AND t.ticket_type = 'full'), 0),
		       COALESCE((SELECT t.capacity FROM tickets t WHERE t.event_id = e.event_id AND t.ticket_type = 'concession'), 0),
		       COALESCE((SELECT t.price_cents FROM tickets t WHERE t.event_id = e.event_id AND t.ticket_type = 'concession'), 0),
		       COALESCE((SELECT SUM(b.full_qty) FROM bookings b WHERE b.event_id = e.event_id), 0),
		       COALESCE((SELECT SUM(b.concession_qty) FROM bookings b WHERE b.event_id = e.event_id), 0)
		FROM events e
		WHERE e.status = $1
		ORDER BY e.event_date ASC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.EventSummary
	for rows.Next() {
		var s models.EventSummary
		err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Description,
			&s.EventDate,
			&s.Status,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.PublishedAt,
			&s.Tickets.Full.Capacity,
			&s.Tickets.Full.PriceCents,
			&s.Tickets.Concession.Capacity,
			&s.Tickets.Concession.PriceCents,
			&s.Booked.Full,
			&s.Booked.Concession,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Update applies the organiser edit form: the event row and both ticket rows
// change as one unit or not at all.
func (r *EventRepository) Update(ctx context.Context, upd *models.EventUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateEvent := `
		UPDATE events
		SET title = $1, description = $2, event_date = $3, updated_at = NOW()
		WHERE event_id = $4`

	if _, err := tx.ExecContext(ctx, updateEvent, upd.Title, upd.Description, upd.EventDate, upd.ID); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	updateTicket := `
		UPDATE tickets
		SET price_cents = $1, capacity = $2
		WHERE event_id = $3 AND ticket_type = $4`

	if _, err := tx.ExecContext(ctx, updateTicket, upd.FullPrice, upd.FullCapacity, upd.ID, models.TierFull); err != nil {
		return fmt.Errorf("failed to update full ticket: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateTicket, upd.ConcessionPrice, upd.ConcessionCapacity, upd.ID, models.TierConcession); err != nil {
		return fmt.Errorf("failed to update concession ticket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Publish unconditionally stamps the published state. Re-publishing an
// already published event just refreshes the timestamps.
func (r *EventRepository) Publish(ctx context.Context, id int64) error {
	query := `
		UPDATE events
		SET status = 'published', published_at = NOW(), updated_at = NOW()
		WHERE event_id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Delete removes the event; tickets and bookings cascade at the store level.
func (r *EventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
