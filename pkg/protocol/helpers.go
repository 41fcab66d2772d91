package protocol

import "time"

// OperatorSourcePrefix tags outcomes applied over the operator control
// channel; the operator ID follows.
const OperatorSourcePrefix = "operator:"

// OperatorSource returns the outcome source for operator id.
func OperatorSource(id string) string {
	return OperatorSourcePrefix + id
}

// NewCommandMessage creates a command message
func NewCommandMessage(text string) (*Message, error) {
	return NewMessage(TypeCommand, CommandData{Text: text})
}

// NewOutcomeMessage creates an outcome message
func NewOutcomeMessage(o OutcomeData) (*Message, error) {
	return NewMessage(TypeOutcome, o)
}

// NewErrorMessage creates an error message
func NewErrorMessage(msg string) (*Message, error) {
	return NewMessage(TypeError, ErrorData{Message: msg})
}

// NewPongMessage answers ping, echoing its ID.
func NewPongMessage(ping *Message) (*Message, error) {
	var p PingData
	if err := ping.ParseData(&p); err != nil {
		return nil, err
	}
	return NewMessage(TypePong, PongData{
		ID:     p.ID,
		PingTS: ping.Timestamp,
		PongTS: time.Now().UnixMilli(),
	})
}

// GetCommandData extracts command data from a message
func (m *Message) GetCommandData() (*CommandData, error) {
	var data CommandData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetOutcomeData extracts outcome data from a message
func (m *Message) GetOutcomeData() (*OutcomeData, error) {
	var data OutcomeData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
