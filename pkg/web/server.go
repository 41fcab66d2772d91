// Package web serves the operator API: REST endpoints over a session plus a
// status WebSocket stream and the operator control channel.
package web

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-atlas/internal/log"
	"github.com/teslashibe/go-atlas/pkg/control"
	"github.com/teslashibe/go-atlas/pkg/hub"
	"github.com/teslashibe/go-atlas/pkg/protocol"
	"github.com/teslashibe/go-atlas/pkg/session"
)

// Journal is the read side of the outcome journal.
type Journal interface {
	Recent(ctx context.Context, limit int) ([]protocol.OutcomeData, error)
	Count(ctx context.Context) (int, error)
}

// Config holds server settings.
type Config struct {
	Addr      string    // listen address, e.g. ":8080"
	AccessLog io.Writer // request log destination; nil disables it
	Journal   Journal   // serves GET /api/journal; nil disables it
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Addr:      ":8080",
		AccessLog: os.Stderr,
	}
}

// Server is the operator API server.
type Server struct {
	app  *fiber.App
	cfg  Config
	sess *session.Session

	statusHub  *hub.Hub
	controlHub *control.Hub
}

// NewServer creates a server over sess.
func NewServer(cfg Config, sess *session.Session) *Server {
	s := &Server{
		cfg:        cfg,
		sess:       sess,
		statusHub:  hub.New("status"),
		controlHub: control.NewHub(sess),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Atlas Operator API",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: cfg.AccessLog}))
	}
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Post("/commands", s.handleCommand)
	api.Get("/sensors", s.handleSensors)
	api.Get("/history", s.handleHistory)
	api.Post("/reset", s.handleReset)
	api.Get("/journal", s.handleJournal)
	api.Get("/streams", s.handleStreams)
	s.controlHub.RegisterAPIRoutes(api)

	app.Use("/ws/status", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	s.controlHub.RegisterRoutes(app)

	// Every applied command, whatever its origin, reaches status clients.
	sess.OnOutcome(func(o protocol.OutcomeData) {
		msg, err := protocol.NewOutcomeMessage(o)
		if err != nil {
			log.Error("encoding outcome", "err", err)
			return
		}
		if err := s.statusHub.BroadcastMessage(msg); err != nil {
			log.Error("broadcasting outcome", "err", err)
		}
	})

	s.app = app
	return s
}

// App exposes the underlying fiber app (used by tests).
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is done, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	go s.statusHub.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		log.Info("operator API listening", "addr", s.cfg.Addr)
		errc <- s.app.Listen(s.cfg.Addr)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		if err := s.app.Shutdown(); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
