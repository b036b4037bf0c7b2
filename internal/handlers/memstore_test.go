package handlers_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	apperr "eventdesk/internal/errors"
	"eventdesk/internal/models"
)

// memState is the shared in-memory database backing the store fakes. The
// store adapters below mirror the SQL repositories closely enough that the
// handlers exercise the same paths they do in production.
type memState struct {
	mu            sync.Mutex
	nextEventID   int64
	nextBookingID int64
	events        map[int64]*models.Event
	tickets       map[int64][]models.Ticket
	bookings      map[int64][]models.Booking
	settings      *models.SiteSettings
}

func newMemState() *memState {
	return &memState{
		events:   make(map[int64]*models.Event),
		tickets:  make(map[int64][]models.Ticket),
		bookings: make(map[int64][]models.Booking),
		settings: &models.SiteSettings{
			SiteName:        "Event Manager",
			SiteDescription: "Create events and take bookings.",
		},
	}
}

func (m *memState) seedEvent(title, status string, fullPrice, fullCap, concPrice, concCap int) *models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextEventID++
	now := time.Now()
	event := &models.Event{
		ID:          m.nextEventID,
		Title:       title,
		Description: "Seeded for testing.",
		EventDate:   now.AddDate(0, 1, 0),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == models.StatusPublished {
		event.PublishedAt = &now
	}
	m.events[event.ID] = event
	m.tickets[event.ID] = []models.Ticket{
		{EventID: event.ID, Type: models.TierFull, PriceCents: fullPrice, Capacity: fullCap},
		{EventID: event.ID, Type: models.TierConcession, PriceCents: concPrice, Capacity: concCap},
	}
	return event
}

func (m *memState) seedBooking(eventID int64, name string, fullQty, concessionQty int) *models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextBookingID++
	booking := models.Booking{
		ID:            m.nextBookingID,
		EventID:       eventID,
		Reference:     fmt.Sprintf("ref-%d", m.nextBookingID),
		AttendeeName:  name,
		FullQty:       fullQty,
		ConcessionQty: concessionQty,
		CreatedAt:     time.Now(),
	}
	m.bookings[eventID] = append(m.bookings[eventID], booking)
	return &booking
}

func (m *memState) totalsLocked(eventID int64) models.TierTotals {
	var totals models.TierTotals
	for _, b := range m.bookings[eventID] {
		totals.Full += b.FullQty
		totals.Concession += b.ConcessionQty
	}
	return totals
}

type memEvents struct{ s *memState }

func (e *memEvents) CreateDraft(_ context.Context) (*models.Event, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	e.s.nextEventID++
	now := time.Now()
	event := &models.Event{
		ID:          e.s.nextEventID,
		Title:       "Untitled event",
		Description: "Add details here.",
		EventDate:   now,
		Status:      models.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.s.events[event.ID] = event
	e.s.tickets[event.ID] = []models.Ticket{
		{EventID: event.ID, Type: models.TierFull},
		{EventID: event.ID, Type: models.TierConcession},
	}
	return event, nil
}

func (e *memEvents) GetByID(_ context.Context, id int64) (*models.Event, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	return e.s.events[id], nil
}

func (e *memEvents) GetPublished(_ context.Context, id int64) (*models.Event, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	event := e.s.events[id]
	if event == nil || event.Status != models.StatusPublished {
		return nil, nil
	}
	return event, nil
}

func (e *memEvents) ListPublished(_ context.Context) ([]models.Event, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	var out []models.Event
	for _, ev := range e.s.events {
		if ev.Status == models.StatusPublished {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (e *memEvents) SearchPublished(ctx context.Context, q string) ([]models.Event, error) {
	events, _ := e.ListPublished(ctx)
	q = strings.ToLower(q)

	var out []models.Event
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), q) ||
			strings.Contains(strings.ToLower(ev.Description), q) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (e *memEvents) ListSummaries(_ context.Context, status string) ([]models.EventSummary, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	var out []models.EventSummary
	for _, ev := range e.s.events {
		if ev.Status != status {
			continue
		}
		out = append(out, models.EventSummary{
			Event:   *ev,
			Tickets: models.BuildTicketMap(e.s.tickets[ev.ID]),
			Booked:  e.s.totalsLocked(ev.ID),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (e *memEvents) Update(_ context.Context, upd *models.EventUpdate) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	event := e.s.events[upd.ID]
	if event == nil {
		return nil
	}

	event.Title = upd.Title
	event.Description = upd.Description
	if d, err := time.Parse("2006-01-02", upd.EventDate); err == nil {
		event.EventDate = d
	}
	event.UpdatedAt = time.Now()

	e.s.tickets[upd.ID] = []models.Ticket{
		{EventID: upd.ID, Type: models.TierFull, PriceCents: upd.FullPrice, Capacity: upd.FullCapacity},
		{EventID: upd.ID, Type: models.TierConcession, PriceCents: upd.ConcessionPrice, Capacity: upd.ConcessionCapacity},
	}
	return nil
}

func (e *memEvents) Publish(_ context.Context, id int64) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if event := e.s.events[id]; event != nil {
		now := time.Now()
		event.Status = models.StatusPublished
		event.PublishedAt = &now
		event.UpdatedAt = now
	}
	return nil
}

func (e *memEvents) Delete(_ context.Context, id int64) (bool, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if _, ok := e.s.events[id]; !ok {
		return false, nil
	}
	delete(e.s.events, id)
	delete(e.s.tickets, id)
	delete(e.s.bookings, id)
	return true, nil
}

type memTickets struct{ s *memState }

func (t *memTickets) GetForEvent(_ context.Context, eventID int64) ([]models.Ticket, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.tickets[eventID], nil
}

type memBookings struct{ s *memState }

func (b *memBookings) ListForEvent(_ context.Context, eventID int64) ([]models.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	rows := append([]models.Booking(nil), b.s.bookings[eventID]...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (b *memBookings) TotalsForEvent(_ context.Context, eventID int64) (models.TierTotals, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return b.s.totalsLocked(eventID), nil
}

func (b *memBookings) CreateWithinCapacity(_ context.Context, booking *models.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	tm := models.BuildTicketMap(b.s.tickets[booking.EventID])
	totals := b.s.totalsLocked(booking.EventID)

	if booking.FullQty > tm.Full.Capacity-totals.Full ||
		booking.ConcessionQty > tm.Concession.Capacity-totals.Concession {
		return apperr.ErrInsufficientCapacity
	}

	b.s.nextBookingID++
	booking.ID = b.s.nextBookingID
	booking.CreatedAt = time.Now()
	b.s.bookings[booking.EventID] = append(b.s.bookings[booking.EventID], *booking)
	return nil
}

func (b *memBookings) Delete(_ context.Context, eventID, bookingID int64) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	rows := b.s.bookings[eventID]
	for i, row := range rows {
		if row.ID == bookingID {
			b.s.bookings[eventID] = append(rows[:i], rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memSettings struct{ s *memState }

func (st *memSettings) Get(_ context.Context) (*models.SiteSettings, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	return st.s.settings, nil
}

func (st *memSettings) Update(_ context.Context, siteName, siteDescription string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.settings = &models.SiteSettings{SiteName: siteName, SiteDescription: siteDescription}
	return nil
}
