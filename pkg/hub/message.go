// Package hub provides a websocket broadcast hub built on the channel-based
// fan-out pattern: one goroutine owns the client set, each client has one
// writer goroutine.
package hub

// Message is one pre-encoded JSON text frame queued for broadcast
type Message struct {
	Data []byte
}

// NewJSONMessage creates a JSON message from pre-encoded bytes
func NewJSONMessage(data []byte) Message {
	return Message{Data: data}
}
