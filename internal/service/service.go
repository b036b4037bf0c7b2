package service

import (
	"eventdesk/internal/cache"
	"eventdesk/internal/messaging"
	"eventdesk/internal/repository"
	"eventdesk/internal/search"
)

type Services struct {
	Settings *SettingsService
	Events   *EventService
	Bookings *BookingService
}

func NewServices(repos *repository.Repositories, cacheClient *cache.ValkeyClient, natsClient *messaging.NATSClient, searchClient *search.ElasticsearchClient) *Services {
	return &Services{
		Settings: NewSettingsService(repos.Settings),
		Events:   NewEventService(repos.Events, repos.Tickets, cacheClient, natsClient, searchClient),
		Bookings: NewBookingService(repos.Bookings, repos.Tickets, natsClient),
	}
}
