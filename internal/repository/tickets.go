package repository

import (
	"context"

	"eventdesk/internal/database"
	"eventdesk/internal/models"
)

type TicketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) GetForEvent(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	query := `
		SELECT ticket_id, event_id, ticket_type, price_cents, capacity
		FROM tickets
		WHERE event_id = $1
		ORDER BY ticket_type`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.EventID,
			&ticket.Type,
			&ticket.PriceCents,
			&ticket.Capacity,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}
