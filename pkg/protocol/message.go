// Package protocol defines the JSON messages exchanged with operators over
// WebSocket and stored in the outcome journal.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/teslashibe/go-atlas/pkg/brain"
	"github.com/teslashibe/go-atlas/pkg/sensors"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Operator → Robot messages
	TypeCommand MessageType = "command" // Text command to execute
	TypeSense   MessageType = "sense"   // Request a fresh analysis

	// Robot → Operator messages
	TypeOutcome  MessageType = "outcome"  // Applied command and resulting state
	TypeState    MessageType = "state"    // Current robot state
	TypeAnalysis MessageType = "analysis" // Sensor bundle with its analysis
	TypeError    MessageType = "error"    // Rejected input

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data any) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v any) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("failed to parse message: missing type")
	}
	return &msg, nil
}

// CommandData carries one text command.
type CommandData struct {
	Text string `json:"text"`
}

// OutcomeData is one applied command with its result and the state after it.
// Source names where the command came from ("api", "script",
// "operator:<id>"); it is empty when the caller did not say.
type OutcomeData struct {
	ID      string       `json:"id"`
	Source  string       `json:"source,omitempty"`
	Command string       `json:"command"`
	Result  brain.Result `json:"result"`
	State   brain.State  `json:"state"`
	At      time.Time    `json:"at"`
}

// AnalysisData is a sensor bundle together with its analysis.
type AnalysisData struct {
	Bundle   sensors.Bundle `json:"bundle"`
	Analysis brain.Analysis `json:"analysis"`
}

// ErrorData describes rejected input.
type ErrorData struct {
	Message string `json:"message"`
}

// PingData contains ping information
type PingData struct {
	ID string `json:"id"`
}

// PongData contains pong response
type PongData struct {
	ID     string `json:"id"`
	PingTS int64  `json:"ping_ts"`
	PongTS int64  `json:"pong_ts"`
}
