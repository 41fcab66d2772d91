package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-atlas/internal/log"
	"github.com/teslashibe/go-atlas/pkg/brain"
	"github.com/teslashibe/go-atlas/pkg/hub"
	"github.com/teslashibe/go-atlas/pkg/protocol"
)

// StateResponse is the body of GET /api/state.
type StateResponse struct {
	Name  string      `json:"name"`
	State brain.State `json:"state"`
}

// CommandRequest is the request body for POST /api/commands.
type CommandRequest struct {
	Text string `json:"text"`
}

// JournalResponse is the body of GET /api/journal.
type JournalResponse struct {
	Total    int                    `json:"total"`
	Outcomes []protocol.OutcomeData `json:"outcomes"`
}

// SourceAPI tags outcomes applied through POST /api/commands.
const SourceAPI = "api"

const defaultJournalLimit = 50

func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(StateResponse{Name: s.sess.Name(), State: s.sess.State()})
}

func (s *Server) handleCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Blank text is applied too and resolves to UNKNOWN.
	out := s.sess.ApplyFrom(SourceAPI, req.Text)
	log.Debug("command applied", "command", req.Text, "action", out.Result.Action, "success", out.Result.Success)
	return c.JSON(out)
}

func (s *Server) handleSensors(c *fiber.Ctx) error {
	return c.JSON(s.sess.Sense())
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	return c.JSON(s.sess.History())
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	st := s.sess.Reset()
	msg, err := protocol.NewMessage(protocol.TypeState, st)
	if err != nil {
		log.Error("encoding state", "err", err)
	} else if err := s.statusHub.BroadcastMessage(msg); err != nil {
		log.Error("broadcasting state", "err", err)
	}
	return c.JSON(StateResponse{Name: s.sess.Name(), State: st})
}

// StreamsResponse is the body of GET /api/streams.
type StreamsResponse struct {
	StatusClients int `json:"status_clients"`
	Operators     int `json:"operators"`
}

func (s *Server) handleStreams(c *fiber.Ctx) error {
	return c.JSON(StreamsResponse{
		StatusClients: s.statusHub.ClientCount(),
		Operators:     s.controlHub.OperatorCount(),
	})
}

func (s *Server) handleJournal(c *fiber.Ctx) error {
	if s.cfg.Journal == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "journal disabled"})
	}
	limit := c.QueryInt("limit", defaultJournalLimit)
	if limit <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be positive"})
	}

	ctx := c.UserContext()
	outcomes, err := s.cfg.Journal.Recent(ctx, limit)
	if err != nil {
		log.Error("reading journal", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "journal unavailable"})
	}
	total, err := s.cfg.Journal.Count(ctx)
	if err != nil {
		log.Error("counting journal", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "journal unavailable"})
	}

	if outcomes == nil {
		outcomes = []protocol.OutcomeData{}
	}
	return c.JSON(JournalResponse{Total: total, Outcomes: outcomes})
}

// handleStatusWS sends the current state, then every outcome.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	var initial *hub.Message
	if msg, err := protocol.NewMessage(protocol.TypeState, s.sess.State()); err == nil {
		if data, err := msg.Bytes(); err == nil {
			m := hub.NewJSONMessage(data)
			initial = &m
		}
	}

	client := hub.NewClient(s.statusHub, c, initial)
	client.Run()
}
