package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventdesk/internal/cache"
	apperr "eventdesk/internal/errors"
	"eventdesk/internal/logger"
	"eventdesk/internal/messaging"
	"eventdesk/internal/models"
	"eventdesk/internal/search"
)

// EventFormErrorMessage is shown when the organiser edit form fails
// validation.
const EventFormErrorMessage = "Fill all fields with non-negative numbers."

// ErrInvalidEventForm signals an edit submission the organiser has to fix.
var ErrInvalidEventForm = errors.New("invalid event form")

type EventStore interface {
	CreateDraft(ctx context.Context) (*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetPublished(ctx context.Context, id int64) (*models.Event, error)
	ListPublished(ctx context.Context) ([]models.Event, error)
	SearchPublished(ctx context.Context, q string) ([]models.Event, error)
	ListSummaries(ctx context.Context, status string) ([]models.EventSummary, error)
	Update(ctx context.Context, upd *models.EventUpdate) error
	Publish(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type TicketStore interface {
	GetForEvent(ctx context.Context, eventID int64) ([]models.Ticket, error)
}

// EventForm carries the raw organiser edit submission before validation
type EventForm struct {
	Title              string
	Description        string
	EventDate          string
	FullPrice          string
	FullCapacity       string
	ConcessionPrice    string
	ConcessionCapacity string
}

type EventService struct {
	events  EventStore
	tickets TicketStore
	cache   *cache.ValkeyClient
	nats    *messaging.NATSClient
	search  *search.ElasticsearchClient
}

func NewEventService(events EventStore, tickets TicketStore, cacheClient *cache.ValkeyClient, natsClient *messaging.NATSClient, searchClient *search.ElasticsearchClient) *EventService {
	return &EventService{
		events:  events,
		tickets: tickets,
		cache:   cacheClient,
		nats:    natsClient,
		search:  searchClient,
	}
}

// CreateDraft makes a placeholder draft event with both zero ticket tiers
func (s *EventService) CreateDraft(ctx context.Context) (*models.Event, error) {
	event, err := s.events.CreateDraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft event: %w", err)
	}
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperr.ErrNotFound
	}
	return event, nil
}

// GetPublished resolves an event for attendee routes; drafts are not found
func (s *EventService) GetPublished(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.events.GetPublished(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get published event: %w", err)
	}
	if event == nil {
		return nil, apperr.ErrNotFound
	}
	return event, nil
}

// TicketsFor loads an event's tiers, defaulting any missing row to zero
func (s *EventService) TicketsFor(ctx context.Context, eventID int64) (models.TicketMap, error) {
	tickets, err := s.tickets.GetForEvent(ctx, eventID)
	if err != nil {
		return models.TicketMap{}, fmt.Errorf("failed to get tickets: %w", err)
	}
	return models.BuildTicketMap(tickets), nil
}

// ListPublished returns the attendee listing. With a search query it prefers
// Elasticsearch and falls back to SQL; without one it serves through the
// listing cache when available.
func (s *EventService) ListPublished(ctx context.Context, query string) ([]models.Event, error) {
	if query != "" {
		if s.search != nil {
			events, err := s.search.SearchPublished(ctx, query)
			if err == nil {
				return events, nil
			}
			logger.WithContext(ctx).Error("Search failed, falling back to SQL", "error", err)
		}
		events, err := s.events.SearchPublished(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to search events: %w", err)
		}
		return events, nil
	}

	if s.cache != nil {
		if events, err := s.cache.GetPublishedEvents(ctx); err == nil {
			return events, nil
		}
	}

	events, err := s.events.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetPublishedEvents(ctx, events); err != nil {
			logger.WithContext(ctx).Error("Failed to cache events list", "error", err)
		}
	}

	return events, nil
}

// Dashboard returns the published and draft summaries for the organiser home
func (s *EventService) Dashboard(ctx context.Context) (published, drafts []models.EventSummary, err error) {
	published, err = s.events.ListSummaries(ctx, models.StatusPublished)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list published events: %w", err)
	}

	drafts, err = s.events.ListSummaries(ctx, models.StatusDraft)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list draft events: %w", err)
	}

	return published, drafts, nil
}

// Update validates and applies the organiser edit form. Text fields must be
// non-empty after trimming and all four ticket numbers must be non-negative
// integers; any miss returns ErrInvalidEventForm.
func (s *EventService) Update(ctx context.Context, id int64, form EventForm) error {
	title := strings.TrimSpace(form.Title)
	description := strings.TrimSpace(form.Description)
	eventDate := strings.TrimSpace(form.EventDate)

	if title == "" || description == "" || eventDate == "" {
		return ErrInvalidEventForm
	}

	numbers := make([]int, 4)
	for i, raw := range []string{form.FullPrice, form.FullCapacity, form.ConcessionPrice, form.ConcessionCapacity} {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return ErrInvalidEventForm
		}
		numbers[i] = n
	}

	upd := &models.EventUpdate{
		ID:                 id,
		Title:              title,
		Description:        description,
		EventDate:          eventDate,
		FullPrice:          numbers[0],
		FullCapacity:       numbers[1],
		ConcessionPrice:    numbers[2],
		ConcessionCapacity: numbers[3],
	}

	if err := s.events.Update(ctx, upd); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	s.invalidateListing(ctx)
	s.reindex(ctx, id)

	return nil
}

// Publish flips the event to published. Re-publishing is permitted and just
// re-stamps the timestamps.
func (s *EventService) Publish(ctx context.Context, id int64) error {
	if err := s.events.Publish(ctx, id); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	s.invalidateListing(ctx)
	s.reindex(ctx, id)

	if s.nats != nil {
		event, err := s.events.GetByID(ctx, id)
		if err == nil && event != nil {
			payload := models.EventPublishedEvent{
				EventID:   event.ID,
				Title:     event.Title,
				EventDate: event.EventDate,
				Timestamp: time.Now(),
			}
			if err := s.nats.Publish(models.EventEventPublished, payload); err != nil {
				logger.WithContext(ctx).Error("Failed to publish event published message",
					"error", err,
					"event_id", id,
					"event_type", models.EventEventPublished)
			}
		}
	}

	return nil
}

// Delete removes the event; tickets and bookings cascade in the store
func (s *EventService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.events.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return nil
	}

	s.invalidateListing(ctx)

	if s.search != nil {
		if err := s.search.DeleteEvent(ctx, id); err != nil {
			logger.WithContext(ctx).Error("Failed to remove event from search index",
				"error", err,
				"event_id", id)
		}
	}

	if s.nats != nil {
		payload := models.EventDeletedEvent{
			EventID:   id,
			Timestamp: time.Now(),
		}
		if err := s.nats.Publish(models.EventEventDeleted, payload); err != nil {
			logger.WithContext(ctx).Error("Failed to publish event deleted message",
				"error", err,
				"event_id", id,
				"event_type", models.EventEventDeleted)
		}
	}

	return nil
}

func (s *EventService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublishedEvents(ctx); err != nil {
		logger.WithContext(ctx).Error("Failed to invalidate events cache", "error", err)
	}
}

// reindex refreshes the search document for published events only; drafts
// never enter the index.
func (s *EventService) reindex(ctx context.Context, id int64) {
	if s.search == nil {
		return
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil || event == nil {
		return
	}
	if event.Status != models.StatusPublished {
		return
	}

	if err := s.search.IndexEvent(ctx, event); err != nil {
		logger.WithContext(ctx).Error("Failed to index event",
			"error", err,
			"event_id", id)
	}
}
