package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperr "eventdesk/internal/errors"
	"eventdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AttendeeHome - GET /attendee/
// Lists published events, optionally filtered by a search query.
func (h *Handlers) AttendeeHome(c *gin.Context) {
	ctx := c.Request.Context()
	query := strings.TrimSpace(c.Query("q"))

	settings, err := h.services.Settings.Get(ctx)
	if err != nil {
		h.renderServerError(c, err, "Failed to load settings")
		return
	}

	events, err := h.services.Events.ListPublished(ctx, query)
	if err != nil {
		h.renderServerError(c, err, "Failed to list events")
		return
	}

	c.HTML(http.StatusOK, "attendee-home.html", gin.H{
		"Settings": settings,
		"Events":   events,
		"Query":    query,
	})
}

// AttendeeEvent - GET /attendee/events/:id
// Event detail with ticket availability and the booking form.
func (h *Handlers) AttendeeEvent(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	event, err := h.services.Events.GetPublished(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, err, "Failed to load event")
		return
	}

	tickets, _, avail, err := h.services.Bookings.AvailabilityFor(ctx, id)
	if err != nil {
		h.renderServerError(c, err, "Failed to load availability")
		return
	}

	var errorMessage string
	if c.Query("error") == "1" {
		errorMessage = service.BookingErrorMessage
	}

	c.HTML(http.StatusOK, "attendee-event.html", gin.H{
		"Event":        event,
		"Tickets":      tickets,
		"Availability": avail,
		"Error":        errorMessage,
		"Success":      c.Query("success") == "1",
	})
}

// BookEvent - POST /attendee/events/:id/book
// An empty name short-circuits to a redirect with the error flag; any other
// rejection re-renders the form in place. Success redirects so a refresh
// cannot double-book.
func (h *Handlers) BookEvent(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	attendeeName := strings.TrimSpace(c.PostForm("attendee_name"))
	if attendeeName == "" {
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/attendee/events/%d?error=1", id))
		return
	}

	event, err := h.services.Events.GetPublished(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, err, "Failed to load event")
		return
	}

	fullQty := formInt(c, "full_qty")
	concessionQty := formInt(c, "concession_qty")

	_, err = h.services.Bookings.Create(ctx, id, attendeeName, fullQty, concessionQty)
	if err != nil {
		var rejected *service.BookingRejectedError
		if errors.As(err, &rejected) {
			tickets, _, avail, availErr := h.services.Bookings.AvailabilityFor(ctx, id)
			if availErr != nil {
				h.renderServerError(c, availErr, "Failed to load availability")
				return
			}
			c.HTML(http.StatusOK, "attendee-event.html", gin.H{
				"Event":        event,
				"Tickets":      tickets,
				"Availability": avail,
				"Error":        service.BookingErrorMessage,
				"Success":      false,
			})
			return
		}
		h.renderServerError(c, err, "Failed to create booking")
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/attendee/events/%d?success=1", id))
}
