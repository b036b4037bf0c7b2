package handlers

import (
	"errors"
	"fmt"
	"net/http"

	apperr "eventdesk/internal/errors"
	"eventdesk/internal/models"
	"eventdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// OrganiserHome - GET /organiser/
// Dashboard with published and draft events and their booked totals.
func (h *Handlers) OrganiserHome(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := h.services.Settings.Get(ctx)
	if err != nil {
		h.renderServerError(c, err, "Failed to load settings")
		return
	}

	published, drafts, err := h.services.Events.Dashboard(ctx)
	if err != nil {
		h.renderServerError(c, err, "Failed to load dashboard")
		return
	}

	c.HTML(http.StatusOK, "organiser-home.html", gin.H{
		"Settings":        settings,
		"PublishedEvents": published,
		"DraftEvents":     drafts,
	})
}

// NewEvent - POST /organiser/events/new
func (h *Handlers) NewEvent(c *gin.Context) {
	event, err := h.services.Events.CreateDraft(c.Request.Context())
	if err != nil {
		h.renderServerError(c, err, "Failed to create draft event")
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/organiser/events/%d/edit", event.ID))
}

// SettingsForm - GET /organiser/settings
func (h *Handlers) SettingsForm(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		h.renderServerError(c, err, "Failed to load settings")
		return
	}

	c.HTML(http.StatusOK, "organiser-settings.html", gin.H{
		"Settings": settings,
		"Error":    "",
	})
}

// UpdateSettings - POST /organiser/settings
func (h *Handlers) UpdateSettings(c *gin.Context) {
	siteName := c.PostForm("site_name")
	siteDescription := c.PostForm("site_description")

	err := h.services.Settings.Update(c.Request.Context(), siteName, siteDescription)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			c.HTML(http.StatusOK, "organiser-settings.html", gin.H{
				"Settings": &models.SiteSettings{
					SiteName:        siteName,
					SiteDescription: siteDescription,
				},
				"Error": service.SettingsErrorMessage,
			})
			return
		}
		h.renderServerError(c, err, "Failed to update settings")
		return
	}

	c.Redirect(http.StatusSeeOther, "/organiser")
}

// EditEvent - GET /organiser/events/:id/edit
func (h *Handlers) EditEvent(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	h.renderEditForm(c, id, "")
}

// UpdateEvent - POST /organiser/events/:id
// Validation failure re-renders the form with the stored values and an error
// message; success applies the event and both ticket rows atomically.
func (h *Handlers) UpdateEvent(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	form := service.EventForm{
		Title:              c.PostForm("title"),
		Description:        c.PostForm("description"),
		EventDate:          c.PostForm("event_date"),
		FullPrice:          c.PostForm("full_price"),
		FullCapacity:       c.PostForm("full_capacity"),
		ConcessionPrice:    c.PostForm("concession_price"),
		ConcessionCapacity: c.PostForm("concession_capacity"),
	}

	err := h.services.Events.Update(c.Request.Context(), id, form)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEventForm) {
			h.renderEditForm(c, id, service.EventFormErrorMessage)
			return
		}
		h.renderServerError(c, err, "Failed to update event")
		return
	}

	c.Redirect(http.StatusSeeOther, "/organiser")
}

func (h *Handlers) renderEditForm(c *gin.Context, id int64, errorMessage string) {
	ctx := c.Request.Context()

	event, err := h.services.Events.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, err, "Failed to load event")
		return
	}

	tickets, err := h.services.Events.TicketsFor(ctx, id)
	if err != nil {
		h.renderServerError(c, err, "Failed to load tickets")
		return
	}

	c.HTML(http.StatusOK, "organiser-edit-event.html", gin.H{
		"Event":   event,
		"Tickets": tickets,
		"Error":   errorMessage,
	})
}

// PublishEvent - POST /organiser/events/:id/publish
func (h *Handlers) PublishEvent(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Events.Publish(c.Request.Context(), id); err != nil {
		h.renderServerError(c, err, "Failed to publish event")
		return
	}

	c.Redirect(http.StatusSeeOther, "/organiser")
}

// DeleteEvent - POST /organiser/events/:id/delete
// Tickets and bookings cascade away with the event.
func (h *Handlers) DeleteEvent(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Events.Delete(c.Request.Context(), id); err != nil {
		h.renderServerError(c, err, "Failed to delete event")
		return
	}

	c.Redirect(http.StatusSeeOther, "/organiser")
}

// EventBookings - GET /organiser/events/:id/bookings
func (h *Handlers) EventBookings(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	event, err := h.services.Events.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, err, "Failed to load event")
		return
	}

	bookings, totals, err := h.services.Bookings.ListForEvent(ctx, id)
	if err != nil {
		h.renderServerError(c, err, "Failed to list bookings")
		return
	}

	c.HTML(http.StatusOK, "organiser-bookings.html", gin.H{
		"Event":    event,
		"Bookings": bookings,
		"Totals":   totals,
	})
}

// CancelBooking - POST /organiser/events/:id/bookings/:bookingId/delete
// Deleting a booking that is not attached to this event is a no-op, and the
// handler still redirects.
func (h *Handlers) CancelBooking(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	bookingID, ok := h.paramID(c, "bookingId")
	if !ok {
		return
	}

	if err := h.services.Bookings.Cancel(c.Request.Context(), id, bookingID); err != nil {
		h.renderServerError(c, err, "Failed to cancel booking")
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/organiser/events/%d/bookings", id))
}
