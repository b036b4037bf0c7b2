package models

import (
	"time"
)

// Event lifecycle states. An event only ever moves draft -> published.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Ticket tiers. Every event owns exactly one ticket row per tier.
const (
	TierFull       = "full"
	TierConcession = "concession"
)

// SiteSettings is the singleton settings row (settings_id = 1)
type SiteSettings struct {
	SiteName        string `json:"site_name" db:"site_name"`
	SiteDescription string `json:"site_description" db:"site_description"`
}

// Event represents an organiser-managed event
type Event struct {
	ID          int64      `json:"id" db:"event_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	EventDate   time.Time  `json:"event_date" db:"event_date"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
}

// Ticket is one price/capacity tier of an event
type Ticket struct {
	ID         int64  `json:"id" db:"ticket_id"`
	EventID    int64  `json:"event_id" db:"event_id"`
	Type       string `json:"ticket_type" db:"ticket_type"`
	PriceCents int    `json:"price_cents" db:"price_cents"`
	Capacity   int    `json:"capacity" db:"capacity"`
}

// Booking is one attendee's reservation against a published event
type Booking struct {
	ID            int64     `json:"id" db:"booking_id"`
	EventID       int64     `json:"event_id" db:"event_id"`
	Reference     string    `json:"reference" db:"reference"`
	AttendeeName  string    `json:"attendee_name" db:"attendee_name"`
	FullQty       int       `json:"full_qty" db:"full_qty"`
	ConcessionQty int       `json:"concession_qty" db:"concession_qty"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
