package models

// Tier is the price/capacity pair of one ticket tier
type Tier struct {
	PriceCents int `json:"price_cents"`
	Capacity   int `json:"capacity"`
}

// TicketMap holds both tiers of an event. Tiers missing from the database
// default to zero price and capacity.
type TicketMap struct {
	Full       Tier `json:"full"`
	Concession Tier `json:"concession"`
}

// BuildTicketMap folds ticket rows into a TicketMap, defaulting absent tiers
func BuildTicketMap(tickets []Ticket) TicketMap {
	var tm TicketMap
	for _, t := range tickets {
		tier := Tier{PriceCents: t.PriceCents, Capacity: t.Capacity}
		switch t.Type {
		case TierFull:
			tm.Full = tier
		case TierConcession:
			tm.Concession = tier
		}
	}
	return tm
}

// TierTotals aggregates booked quantities per tier across an event's bookings
type TierTotals struct {
	Full       int `json:"full"`
	Concession int `json:"concession"`
}

// Availability is the remaining bookable seats per tier, never negative
type Availability struct {
	Full       int `json:"full"`
	Concession int `json:"concession"`
}

// EventSummary is an event with its ticket values and booked totals, as
// shown on the organiser dashboard
type EventSummary struct {
	Event
	Tickets TicketMap  `json:"tickets"`
	Booked  TierTotals `json:"booked"`
}

// EventUpdate carries the organiser edit form fields. Prices are in cents.
type EventUpdate struct {
	ID                 int64
	Title              string
	Description        string
	EventDate          string
	FullPrice          int
	FullCapacity       int
	ConcessionPrice    int
	ConcessionCapacity int
}
