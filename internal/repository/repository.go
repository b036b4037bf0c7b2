package repository

import (
	"eventdesk/internal/database"
)

type Repositories struct {
	Settings *SettingsRepository
	Events   *EventRepository
	Tickets  *TicketRepository
	Bookings *BookingRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Settings: NewSettingsRepository(db),
		Events:   NewEventRepository(db),
		Tickets:  NewTicketRepository(db),
		Bookings: NewBookingRepository(db),
	}
}
