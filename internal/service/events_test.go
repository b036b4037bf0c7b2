package service

import (
	"context"
	"testing"
	"time"

	apperr "eventdesk/internal/errors"
	"eventdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventStore struct {
	events     map[int64]*models.Event
	nextID     int64
	lastUpdate *models.EventUpdate
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.Event)}
}

func (f *fakeEventStore) CreateDraft(_ context.Context) (*models.Event, error) {
	f.nextID++
	event := &models.Event{
		ID:          f.nextID,
		Title:       "Untitled event",
		Description: "Add details here.",
		EventDate:   time.Now(),
		Status:      models.StatusDraft,
	}
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventStore) GetPublished(_ context.Context, id int64) (*models.Event, error) {
	event := f.events[id]
	if event == nil || event.Status != models.StatusPublished {
		return nil, nil
	}
	return event, nil
}

func (f *fakeEventStore) ListPublished(_ context.Context) ([]models.Event, error) {
	var out []models.Event
	for _, e := range f.events {
		if e.Status == models.StatusPublished {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) SearchPublished(_ context.Context, _ string) ([]models.Event, error) {
	return f.ListPublished(context.Background())
}

func (f *fakeEventStore) ListSummaries(_ context.Context, status string) ([]models.EventSummary, error) {
	var out []models.EventSummary
	for _, e := range f.events {
		if e.Status == status {
			out = append(out, models.EventSummary{Event: *e})
		}
	}
	return out, nil
}

func (f *fakeEventStore) Update(_ context.Context, upd *models.EventUpdate) error {
	f.lastUpdate = upd
	event := f.events[upd.ID]
	if event == nil {
		return nil
	}
	event.Title = upd.Title
	event.Description = upd.Description
	if d, err := time.Parse("2006-01-02", upd.EventDate); err == nil {
		event.EventDate = d
	}
	return nil
}

func (f *fakeEventStore) Publish(_ context.Context, id int64) error {
	if event := f.events[id]; event != nil {
		now := time.Now()
		event.Status = models.StatusPublished
		event.PublishedAt = &now
	}
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.events[id]; !ok {
		return false, nil
	}
	delete(f.events, id)
	return true, nil
}

func newEventFixture() (*EventService, *fakeEventStore) {
	store := newFakeEventStore()
	tickets := &fakeTicketStore{tickets: map[int64][]models.Ticket{}}
	return NewEventService(store, tickets, nil, nil, nil), store
}

func validEventForm() EventForm {
	return EventForm{
		Title:              "Launch Night",
		Description:        "Doors at seven.",
		EventDate:          "2026-10-01",
		FullPrice:          "500",
		FullCapacity:       "20",
		ConcessionPrice:    "300",
		ConcessionCapacity: "10",
	}
}

func TestEventCreateDraft(t *testing.T) {
	svc, _ := newEventFixture()

	event, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Untitled event", event.Title)
	assert.Equal(t, models.StatusDraft, event.Status)
}

func TestEventGetNotFound(t *testing.T) {
	svc, _ := newEventFixture()

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEventGetPublishedHidesDrafts(t *testing.T) {
	svc, store := newEventFixture()
	draft, err := store.CreateDraft(context.Background())
	require.NoError(t, err)

	_, err = svc.GetPublished(context.Background(), draft.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, store.Publish(context.Background(), draft.ID))

	event, err := svc.GetPublished(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, event.ID)
}

func TestEventUpdate(t *testing.T) {
	svc, store := newEventFixture()
	draft, err := store.CreateDraft(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Update(context.Background(), draft.ID, validEventForm()))

	require.NotNil(t, store.lastUpdate)
	assert.Equal(t, "Launch Night", store.lastUpdate.Title)
	assert.Equal(t, 500, store.lastUpdate.FullPrice)
	assert.Equal(t, 20, store.lastUpdate.FullCapacity)
	assert.Equal(t, 300, store.lastUpdate.ConcessionPrice)
	assert.Equal(t, 10, store.lastUpdate.ConcessionCapacity)
}

func TestEventUpdateAllowsZeroes(t *testing.T) {
	svc, store := newEventFixture()
	draft, err := store.CreateDraft(context.Background())
	require.NoError(t, err)

	form := validEventForm()
	form.FullPrice = "0"
	form.ConcessionCapacity = "0"

	require.NoError(t, svc.Update(context.Background(), draft.ID, form))
	assert.Equal(t, 0, store.lastUpdate.FullPrice)
	assert.Equal(t, 0, store.lastUpdate.ConcessionCapacity)
}

func TestEventUpdateRejectsBadForms(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*EventForm)
	}{
		{"empty title", func(f *EventForm) { f.Title = "  " }},
		{"empty description", func(f *EventForm) { f.Description = "" }},
		{"empty date", func(f *EventForm) { f.EventDate = "" }},
		{"negative price", func(f *EventForm) { f.FullPrice = "-1" }},
		{"negative capacity", func(f *EventForm) { f.ConcessionCapacity = "-5" }},
		{"non-numeric price", func(f *EventForm) { f.ConcessionPrice = "free" }},
		{"blank capacity", func(f *EventForm) { f.FullCapacity = "" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newEventFixture()
			draft, err := store.CreateDraft(context.Background())
			require.NoError(t, err)

			form := validEventForm()
			tt.mutate(&form)

			err = svc.Update(context.Background(), draft.ID, form)
			assert.ErrorIs(t, err, ErrInvalidEventForm)
			assert.Nil(t, store.lastUpdate)
		})
	}
}

func TestEventPublishIsIdempotent(t *testing.T) {
	svc, store := newEventFixture()
	draft, err := store.CreateDraft(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Publish(context.Background(), draft.ID))
	first := store.events[draft.ID].PublishedAt
	require.NotNil(t, first)

	require.NoError(t, svc.Publish(context.Background(), draft.ID))
	assert.Equal(t, models.StatusPublished, store.events[draft.ID].Status)
}

func TestEventDelete(t *testing.T) {
	svc, store := newEventFixture()
	draft, err := store.CreateDraft(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), draft.ID))
	assert.Empty(t, store.events)

	// Deleting an id that no longer exists is still a success.
	require.NoError(t, svc.Delete(context.Background(), draft.ID))
}
