package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createSiteSettingsTable,
		seedSiteSettings,
		createEventsTable,
		createTicketsTable,
		createBookingsTable,
		createEventsStatusDateIndex,
		createBookingsEventIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Singleton row: settings_id is pinned to 1 so the UPDATE in the settings
// form can never fan out.
const createSiteSettingsTable = `
CREATE TABLE IF NOT EXISTS site_settings (
    settings_id INTEGER PRIMARY KEY DEFAULT 1,
    site_name VARCHAR(255) NOT NULL,
    site_description TEXT NOT NULL DEFAULT '',

    CHECK (settings_id = 1)
);`

const seedSiteSettings = `
INSERT INTO site_settings (settings_id, site_name, site_description)
VALUES (1, 'Event Manager', 'Create events and take bookings.')
ON CONFLICT (settings_id) DO NOTHING;`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    event_id SERIAL PRIMARY KEY,
    title VARCHAR(500) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    event_date DATE NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'draft',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    published_at TIMESTAMP,

    CHECK (status IN ('draft', 'published'))
);`

// UNIQUE (event_id, ticket_type) keeps the two-row-per-event invariant.
const createTicketsTable = `
CREATE TABLE IF NOT EXISTS tickets (
    ticket_id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
    ticket_type VARCHAR(20) NOT NULL,
    price_cents INTEGER NOT NULL DEFAULT 0,
    capacity INTEGER NOT NULL DEFAULT 0,

    UNIQUE (event_id, ticket_type),
    CHECK (ticket_type IN ('full', 'concession')),
    CHECK (price_cents >= 0),
    CHECK (capacity >= 0)
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    booking_id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
    reference UUID NOT NULL,
    attendee_name VARCHAR(255) NOT NULL,
    full_qty INTEGER NOT NULL DEFAULT 0,
    concession_qty INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE (reference),
    CHECK (full_qty >= 0),
    CHECK (concession_qty >= 0),
    CHECK (full_qty + concession_qty > 0)
);`

const createEventsStatusDateIndex = `
CREATE INDEX IF NOT EXISTS events_status_date_idx
ON events (status, event_date);`

const createBookingsEventIndex = `
CREATE INDEX IF NOT EXISTS bookings_event_created_idx
ON bookings (event_id, created_at DESC);`
