// Package rest exposes the chat and product use cases over HTTP.
package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
)

// Config HTTP server settings
type Config struct {
	Addr         string
	CORSOrigins  []string
	RateLimitMax int
}

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	cfg Config
}

// New creates a new server with middleware configured.
func New(cfg Config) *Server {
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 100
	}

	app := fiber.New(fiber.Config{
		AppName:      "ekonomi",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))

	// Per-IP rate limit, requests per minute
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": "Rate limit exceeded. Please try again later.",
			})
		},
	}))

	return &Server{App: app, cfg: cfg}
}

// RegisterRoutes mounts the API, the probes and, when non-nil, the metrics
// handler.
func (s *Server) RegisterRoutes(h *Handler, probe *ProbeHandler, metrics http.Handler) {
	s.App.Get("/", h.Home)

	s.App.Get("/chat", h.ChatQuery)
	s.App.Post("/chat", h.Chat)
	s.App.Get("/get-conversations", h.Conversations)

	s.App.Get("/product/export", h.ExportProducts)
	s.App.Get("/product", h.Products)

	s.App.Get("/healthz", probe.Liveness)
	s.App.Get("/readyz", probe.Readiness)

	if metrics != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(metrics))
	}
}

// Start listens on the configured address; blocks until shutdown.
func (s *Server) Start() error {
	slog.Info("starting HTTP server", "addr", s.cfg.Addr)
	return s.App.Listen(s.cfg.Addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}

// errorHandler renders every failure as {"detail": message}
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, entity.ErrInvalidInput):
		code = fiber.StatusBadRequest
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
	})
}
