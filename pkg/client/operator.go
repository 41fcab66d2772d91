package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-atlas/pkg/protocol"
)

// Operator is a live connection to the operator control channel.
// It is not safe for concurrent use.
type Operator struct {
	ID   string
	conn *websocket.Conn
}

// Dial opens the control channel as operator id. An empty id gets a random one.
func (c *Client) Dial(ctx context.Context, id string) (*Operator, error) {
	if id == "" {
		id = uuid.New().String()
	}
	u := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/ws/control/" + url.PathEscape(id)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", u, err)
	}
	return &Operator{ID: id, conn: conn}, nil
}

// Apply sends one command and waits for its outcome. Outcomes of commands
// applied by others that arrive in between are skipped.
func (o *Operator) Apply(ctx context.Context, text string) (*protocol.OutcomeData, error) {
	msg, err := protocol.NewCommandMessage(text)
	if err != nil {
		return nil, err
	}
	data, err := msg.Bytes()
	if err != nil {
		return nil, err
	}

	deadline, _ := ctx.Deadline()
	o.conn.SetWriteDeadline(deadline)
	o.conn.SetReadDeadline(deadline)
	defer o.conn.SetReadDeadline(time.Time{})
	// Cancellation unblocks the pending read.
	stop := context.AfterFunc(ctx, func() { o.conn.SetReadDeadline(time.Now()) })
	defer stop()

	if err := o.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("sending command: %w", err)
	}

	self := protocol.OperatorSource(o.ID)
	for {
		_, raw, err := o.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("reading reply: %w", err)
		}
		reply, err := protocol.ParseMessage(raw)
		if err != nil {
			return nil, err
		}

		switch reply.Type {
		case protocol.TypeOutcome:
			out, err := reply.GetOutcomeData()
			if err != nil {
				return nil, err
			}
			if out.Source == self {
				return out, nil
			}
		case protocol.TypeError:
			var e protocol.ErrorData
			if err := reply.ParseData(&e); err != nil {
				return nil, err
			}
			return nil, &APIError{Message: e.Message}
		}
	}
}

// Close closes the connection.
func (o *Operator) Close() error {
	o.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return o.conn.Close()
}
