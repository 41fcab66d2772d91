// Package control accepts operator WebSocket connections that drive a
// session: operators send command, sense and ping messages and receive
// outcome, analysis and pong replies.
package control

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-atlas/internal/log"
	"github.com/teslashibe/go-atlas/pkg/protocol"
	"github.com/teslashibe/go-atlas/pkg/session"
)

// writeWait bounds a single frame write to an operator.
const writeWait = 10 * time.Second

// Operator is one connected operator.
type Operator struct {
	ID        string
	Conn      *websocket.Conn
	Connected time.Time
	LastSeen  time.Time

	mu sync.Mutex
}

// Send writes a message to the operator.
func (o *Operator) Send(msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return o.Conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages operator connections for one session.
type Hub struct {
	sess *session.Session
	log  *slog.Logger

	mu        sync.RWMutex
	operators map[string]*Operator

	messagesReceived atomic.Uint64
	messagesSent     atomic.Uint64
	commandsApplied  atomic.Uint64
}

// NewHub creates an operator hub bound to sess. Every outcome the session
// applies is relayed to the connected operators, except the one that sent it.
func NewHub(sess *session.Session) *Hub {
	h := &Hub{
		sess:      sess,
		log:       log.With("component", "control"),
		operators: make(map[string]*Operator),
	}
	sess.OnOutcome(h.relay)
	return h
}

// RegisterRoutes registers the operator WebSocket endpoint.
func (h *Hub) RegisterRoutes(app *fiber.App) {
	app.Use("/ws/control", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/control", websocket.New(h.handleOperator))
	app.Get("/ws/control/:id", websocket.New(h.handleOperator))
}

func (h *Hub) handleOperator(c *websocket.Conn) {
	id := c.Params("id")
	if id == "" {
		id = uuid.New().String()
	}

	op := &Operator{
		ID:        id,
		Conn:      c,
		Connected: time.Now(),
		LastSeen:  time.Now(),
	}

	h.mu.Lock()
	h.operators[id] = op
	count := len(h.operators)
	h.mu.Unlock()
	h.log.Info("operator connected", "operator", id, "operators", count)

	defer func() {
		h.mu.Lock()
		delete(h.operators, id)
		count := len(h.operators)
		h.mu.Unlock()
		h.log.Info("operator disconnected", "operator", id, "operators", count)
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			h.log.Debug("operator read ended", "operator", id, "err", err)
			return
		}

		op.mu.Lock()
		op.LastSeen = time.Now()
		op.mu.Unlock()

		h.messagesReceived.Add(1)
		reply := h.handleMessage(id, data)
		if reply == nil {
			continue
		}
		h.messagesSent.Add(1)
		if err := op.Send(reply); err != nil {
			h.log.Warn("operator write failed", "operator", id, "err", err)
			return
		}
	}
}

// handleMessage turns one inbound frame from operator id into its reply.
func (h *Hub) handleMessage(id string, data []byte) *protocol.Message {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		return h.errorReply(err.Error())
	}

	var reply *protocol.Message
	switch msg.Type {
	case protocol.TypeCommand:
		cmd, perr := msg.GetCommandData()
		if perr != nil {
			return h.errorReply(fmt.Sprintf("bad command: %v", perr))
		}
		out := h.sess.ApplyFrom(protocol.OperatorSource(id), cmd.Text)
		h.commandsApplied.Add(1)
		reply, err = protocol.NewOutcomeMessage(out)

	case protocol.TypeSense:
		reply, err = protocol.NewMessage(protocol.TypeAnalysis, h.sess.Sense())

	case protocol.TypePing:
		reply, err = protocol.NewPongMessage(msg)

	default:
		return h.errorReply(fmt.Sprintf("unsupported message type %q", msg.Type))
	}

	if err != nil {
		return h.errorReply(err.Error())
	}
	return reply
}

func (h *Hub) errorReply(text string) *protocol.Message {
	msg, err := protocol.NewErrorMessage(text)
	if err != nil {
		h.log.Error("encoding error reply", "err", err)
		return nil
	}
	return msg
}

// relay forwards an applied outcome to operators other than its sender.
func (h *Hub) relay(o protocol.OutcomeData) {
	msg, err := protocol.NewOutcomeMessage(o)
	if err != nil {
		h.log.Error("encoding outcome", "err", err)
		return
	}
	sender, ok := strings.CutPrefix(o.Source, protocol.OperatorSourcePrefix)
	if !ok {
		sender = ""
	}
	h.broadcast(msg, sender)
}

// broadcast sends msg to every connected operator except skip.
func (h *Hub) broadcast(msg *protocol.Message, skip string) {
	h.mu.RLock()
	ops := make([]*Operator, 0, len(h.operators))
	for id, o := range h.operators {
		if skip != "" && id == skip {
			continue
		}
		ops = append(ops, o)
	}
	h.mu.RUnlock()

	for _, o := range ops {
		h.messagesSent.Add(1)
		if err := o.Send(msg); err != nil {
			h.log.Warn("broadcast failed", "operator", o.ID, "err", err)
		}
	}
}

// OperatorCount returns the number of connected operators.
func (h *Hub) OperatorCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.operators)
}

// Stats contains hub statistics
type Stats struct {
	OperatorCount    int    `json:"operator_count"`
	MessagesReceived uint64 `json:"messages_received"`
	MessagesSent     uint64 `json:"messages_sent"`
	CommandsApplied  uint64 `json:"commands_applied"`
}

// GetStats returns hub statistics
func (h *Hub) GetStats() Stats {
	return Stats{
		OperatorCount:    h.OperatorCount(),
		MessagesReceived: h.messagesReceived.Load(),
		MessagesSent:     h.messagesSent.Load(),
		CommandsApplied:  h.commandsApplied.Load(),
	}
}

// OperatorInfo describes a connected operator
type OperatorInfo struct {
	ID        string    `json:"id"`
	Connected time.Time `json:"connected"`
	LastSeen  time.Time `json:"last_seen"`
}

// GetOperatorInfos returns info about all connected operators
func (h *Hub) GetOperatorInfos() []OperatorInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	infos := make([]OperatorInfo, 0, len(h.operators))
	for _, o := range h.operators {
		o.mu.Lock()
		infos = append(infos, OperatorInfo{
			ID:        o.ID,
			Connected: o.Connected,
			LastSeen:  o.LastSeen,
		})
		o.mu.Unlock()
	}
	return infos
}

// RegisterAPIRoutes registers operator management routes under api.
func (h *Hub) RegisterAPIRoutes(api fiber.Router) {
	ops := api.Group("/operators")

	ops.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"operators": h.GetOperatorInfos(),
			"count":     h.OperatorCount(),
		})
	})

	ops.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(h.GetStats())
	})
}
