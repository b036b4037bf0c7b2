package api

import (
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"eventdesk/internal/cache"
	"eventdesk/internal/config"
	"eventdesk/internal/database"
	"eventdesk/internal/handlers"
	"eventdesk/internal/messaging"
	"eventdesk/internal/middleware"
	"eventdesk/internal/repository"
	"eventdesk/internal/search"
	"eventdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the database, the optional subsystems and the HTTP routes
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	cache    *cache.ValkeyClient
	nats     *messaging.NATSClient
	search   *search.ElasticsearchClient
	services *service.Services
	repos    *repository.Repositories
}

func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Cache, messaging and search are optional: a failed connection logs a
	// warning and the server runs on Postgres alone.
	var cacheClient *cache.ValkeyClient
	if cfg.Cache.Enabled {
		cacheClient, err = cache.NewValkeyClient(cfg.Cache)
		if err != nil {
			slog.Warn("Cache unavailable, continuing without it", "error", err)
			cacheClient = nil
		}
	}

	var natsClient *messaging.NATSClient
	if cfg.NATS.Enabled {
		natsClient, err = messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			slog.Warn("NATS unavailable, continuing without it", "error", err)
			natsClient = nil
		}
	}

	var searchClient *search.ElasticsearchClient
	if cfg.Search.Enabled {
		searchClient, err = search.NewElasticsearchClient(cfg.Search)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, continuing without it", "error", err)
			searchClient = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cacheClient, natsClient, searchClient)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())

	router.SetFuncMap(TemplateFuncs())
	router.LoadHTMLGlob(cfg.TemplateGlob)

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		cache:    cacheClient,
		nats:     natsClient,
		search:   searchClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server, nil
}

// TemplateFuncs returns the helpers the HTML templates rely on
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"price": func(cents int) string {
			return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
		},
		"date": func(t time.Time) string {
			return t.Format("Mon 2 Jan 2006")
		},
		"dateInput": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		// datetime also handles the nullable published_at column
		"datetime": func(v any) string {
			switch t := v.(type) {
			case time.Time:
				return t.Format("2 Jan 2006 15:04")
			case *time.Time:
				if t == nil {
					return ""
				}
				return t.Format("2 Jan 2006 15:04")
			}
			return ""
		},
	}
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.db)

	s.router.Static("/static", "./web/static")

	s.router.GET("/", h.Home)

	attendee := s.router.Group("/attendee")
	{
		attendee.GET("/", h.AttendeeHome)
		attendee.GET("/events/:id", h.AttendeeEvent)
		attendee.POST("/events/:id/book", h.BookEvent)
	}

	organiser := s.router.Group("/organiser")
	{
		organiser.GET("/", h.OrganiserHome)
		organiser.POST("/events/new", h.NewEvent)
		organiser.GET("/settings", h.SettingsForm)
		organiser.POST("/settings", h.UpdateSettings)
		organiser.GET("/events/:id/edit", h.EditEvent)
		organiser.POST("/events/:id", h.UpdateEvent)
		organiser.POST("/events/:id/publish", h.PublishEvent)
		organiser.POST("/events/:id/delete", h.DeleteEvent)
		organiser.GET("/events/:id/bookings", h.EventBookings)
		organiser.POST("/events/:id/bookings/:bookingId/delete", h.CancelBooking)
	}

	s.router.GET("/health", h.Health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the database and the optional clients
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Error("Error closing cache connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
