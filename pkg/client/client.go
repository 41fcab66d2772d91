// Package client talks to a running operator API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/teslashibe/go-atlas/internal/httpc"
	"github.com/teslashibe/go-atlas/pkg/brain"
	"github.com/teslashibe/go-atlas/pkg/protocol"
)

// DefaultURL is where the operator API listens by default.
const DefaultURL = "http://localhost:8080"

// APIError is a non-2xx response, or an error message on the control
// channel (Status 0).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "operator error: " + e.Message
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client calls the operator API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL using the shared HTTP client.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpc.Client,
	}
}

// Apply sends one command and returns its outcome.
func (c *Client) Apply(ctx context.Context, text string) (*protocol.OutcomeData, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	var out protocol.OutcomeData
	if err := c.do(ctx, http.MethodPost, "/api/commands", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// State returns the robot's current state.
func (c *Client) State(ctx context.Context) (brain.State, error) {
	var resp struct {
		State brain.State `json:"state"`
	}
	err := c.do(ctx, http.MethodGet, "/api/state", nil, &resp)
	return resp.State, err
}

// Sense requests a fresh sensor bundle and its analysis.
func (c *Client) Sense(ctx context.Context) (*protocol.AnalysisData, error) {
	var out protocol.AnalysisData
	if err := c.do(ctx, http.MethodGet, "/api/sensors", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JournalPage is one page of the outcome journal, newest first.
type JournalPage struct {
	Total    int                    `json:"total"`
	Outcomes []protocol.OutcomeData `json:"outcomes"`
}

// Journal returns up to limit journaled outcomes. A server running without a
// journal answers with a 404 APIError.
func (c *Client) Journal(ctx context.Context, limit int) (*JournalPage, error) {
	var out JournalPage
	if err := c.do(ctx, http.MethodGet, "/api/journal?limit="+strconv.Itoa(limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, v any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
