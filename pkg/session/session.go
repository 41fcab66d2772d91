// Package session owns one robot's state for concurrent callers.
//
// brain.Execute is pure; Session is the single place where its result is
// stored, so HTTP handlers and WebSocket clients see a consistent sequence.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-atlas/pkg/brain"
	"github.com/teslashibe/go-atlas/pkg/protocol"
	"github.com/teslashibe/go-atlas/pkg/sensors"
)

// DefaultHistorySize bounds the in-memory outcome history.
const DefaultHistorySize = 500

// Session serializes commands and sensor reads for one robot.
type Session struct {
	name string

	mu      sync.Mutex
	state   brain.State
	src     sensors.Reader
	history []protocol.OutcomeData
	maxHist int

	hookMu    sync.RWMutex
	onOutcome []func(protocol.OutcomeData)

	// held from the state update through hook delivery, so hooks observe
	// outcomes in the order they were applied
	deliverMu sync.Mutex

	now func() time.Time
}

// New creates a session in the startup state reading from src.
func New(name string, src sensors.Reader) *Session {
	return &Session{
		name:    name,
		state:   brain.NewState(),
		src:     src,
		history: make([]protocol.OutcomeData, 0, 64),
		maxHist: DefaultHistorySize,
		now:     time.Now,
	}
}

// Name returns the robot name.
func (s *Session) Name() string {
	return s.name
}

// OnOutcome registers fn to run after every applied command. Hooks run in
// registration order and see outcomes in the order they were applied. They
// run outside the state lock, so a hook may read State or History but must
// not call Apply.
func (s *Session) OnOutcome(fn func(protocol.OutcomeData)) {
	s.hookMu.Lock()
	s.onOutcome = append(s.onOutcome, fn)
	s.hookMu.Unlock()
}

// Apply executes text against the current state.
func (s *Session) Apply(text string) protocol.OutcomeData {
	return s.ApplyFrom("", text)
}

// ApplyFrom is Apply with the outcome tagged by source.
func (s *Session) ApplyFrom(source, text string) protocol.OutcomeData {
	s.mu.Lock()
	next, result := brain.Execute(s.state, text)
	s.state = next
	out := protocol.OutcomeData{
		ID:      uuid.New().String(),
		Source:  source,
		Command: text,
		Result:  result,
		State:   next,
		At:      s.now().UTC(),
	}
	s.history = append(s.history, out)
	if len(s.history) > s.maxHist {
		s.history = s.history[len(s.history)-s.maxHist:]
	}
	s.deliverMu.Lock()
	s.mu.Unlock()
	defer s.deliverMu.Unlock()

	s.hookMu.RLock()
	hooks := s.onOutcome
	s.hookMu.RUnlock()
	for _, fn := range hooks {
		fn(out)
	}
	return out
}

// Sense reads a fresh bundle and analyzes it.
func (s *Session) Sense() protocol.AnalysisData {
	s.mu.Lock()
	b := s.src.Read()
	s.mu.Unlock()
	return protocol.AnalysisData{Bundle: b, Analysis: brain.Analyze(b)}
}

// State returns a copy of the current state.
func (s *Session) State() brain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the applied outcomes, oldest first.
func (s *Session) History() []protocol.OutcomeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.OutcomeData, len(s.history))
	copy(out, s.history)
	return out
}

// Reset returns the robot to its startup state and clears history.
func (s *Session) Reset() brain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = brain.NewState()
	s.history = s.history[:0]
	return s.state
}
