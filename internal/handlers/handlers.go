package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventdesk/internal/database"
	"eventdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
	db       *database.DB
}

func NewHandlers(services *service.Services, db *database.DB) *Handlers {
	return &Handlers{
		services: services,
		db:       db,
	}
}

// Home - GET /
func (h *Handlers) Home(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		h.renderServerError(c, err, "Failed to load settings")
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Settings": settings,
	})
}

// Health - GET /health
func (h *Handlers) Health(c *gin.Context) {
	dbHealth := h.db.Health(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "eventdesk",
		"database": dbHealth,
	})
}

// paramID parses a numeric path parameter, rendering a 404 page on garbage
// input so /events/abc behaves like a missing event.
func (h *Handlers) paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		h.renderNotFound(c)
		return 0, false
	}
	return id, true
}

// formInt coerces a form field to an integer the way the booking form always
// has: whitespace and garbage become 0, negative values stay negative so the
// validator can reject them.
func formInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.PostForm(name)))
	if err != nil {
		return 0
	}
	return n
}

func (h *Handlers) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "Event not found",
	})
}

func (h *Handlers) renderServerError(c *gin.Context, err error, msg string) {
	slog.Error(msg, "error", err, "path", c.Request.URL.Path)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong.",
	})
}
