// Package server is the reference event service: an HTTP API that extracts,
// stores and serves events for the dashboard.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"github.com/Veraticus/show-me-the-data/internal/extract"
	"github.com/Veraticus/show-me-the-data/internal/metrics"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/storage"
)

// Repository is the persistence the service needs.
type Repository interface {
	SaveEvent(ctx context.Context, ev model.EventRecord) error
	GetEvent(ctx context.Context, id string) (model.EventRecord, error)
	ListEvents(ctx context.Context, filter storage.EventFilter) ([]model.EventRecord, error)
	DeleteEvent(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Config holds configuration for the event service.
type Config struct {
	// Certificate switches Start to HTTPS when set.
	Certificate *tls.Certificate
	Listen      string
	Prefix      string
	CORSOrigins string
}

// Server is the event service Fiber application.
type Server struct {
	app       *fiber.App
	repo      Repository
	extractor extract.Extractor
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	config    Config
}

// New creates and configures the event service.
func New(cfg Config, repo Repository, extractor extract.Extractor, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
		AppName:               "smtd",
	})

	s := &Server{
		app:       app,
		repo:      repo,
		extractor: extractor,
		metrics:   m,
		logger:    logger.With("component", "server"),
		now:       time.Now,
		newID:     uuid.NewString,
		config:    cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	s.app.Use(func(c *fiber.Ctx) error {
		reqID := utils.CopyString(c.Get(fiber.HeaderXRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, reqID)
		c.Locals("request_id", reqID)
		return c.Next()
	})

	if s.config.CORSOrigins != "" {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: s.config.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
			AllowMethods: "GET, POST, DELETE, OPTIONS",
		}))
	}

	s.app.Use(s.observe)
}

// observe logs each request and records its metrics.
func (s *Server) observe(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}

	// Fiber reuses the bytes behind c.Method between requests; labels outlive them.
	method := utils.CopyString(c.Method())
	route := c.Route().Path
	s.metrics.RecordRequest(method, route, strconv.Itoa(status), time.Since(start).Seconds())

	if route != "/healthz" && route != "/metrics" {
		s.logger.Info("event api request",
			"method", method,
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
			"request_id", c.Locals("request_id"))
	}
	return err
}

func (s *Server) setupRoutes() {
	s.app.Get("/healthz", s.health)
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group(s.config.Prefix)
	api.Get("/events", s.listEvents)
	api.Post("/events", s.createEvent)
	api.Get("/events/:id", s.getEvent)
	api.Delete("/events/:id", s.deleteEvent)
}

// Start starts the server. Blocks until stopped.
func (s *Server) Start() error {
	addr := s.config.Listen
	if addr == "" {
		addr = ":8000"
	}

	s.logger.Info("event service starting",
		"addr", addr,
		"prefix", s.config.Prefix,
		"extractor", s.extractor.Name(),
		"tls", s.config.Certificate != nil)
	if s.config.Certificate != nil {
		return s.app.ListenTLSWithCertificate(addr, *s.config.Certificate)
	}
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("event service shutting down")
	return s.app.ShutdownWithContext(ctx)
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// errorResponse is the error body shape the dashboard client expects.
type errorResponse struct {
	Detail string `json:"detail"`
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"error", err,
				"status", code,
				"path", c.Path(),
				"method", c.Method())
		}

		return c.Status(code).JSON(errorResponse{Detail: err.Error()})
	}
}
