package protocol

import (
	"encoding/json"
	"fmt"
)

// Event names carried in an Envelope.
const (
	EventMove          = "move"
	EventPlayerRole    = "playerRole"
	EventSpectatorRole = "spectatorRole"
	EventBoardState    = "boardState"
	EventInvalidMove   = "invalidMove"
)

// PromoteQueen is the only promotion the board ever asks for.
const PromoteQueen = "q"

// Envelope is a single named event on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Move is a move descriptor in algebraic squares.
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func (m Move) String() string { return m.From + m.To + m.Promotion }

// New builds an envelope, marshalling data when it is non-nil.
func New(event string, data any) (Envelope, error) {
	env := Envelope{Event: event}
	if data == nil {
		return env, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return env, fmt.Errorf("marshal %s: %w", event, err)
	}
	env.Data = raw
	return env, nil
}

// MustNew is New for payloads that always marshal.
func MustNew(event string, data any) Envelope {
	env, err := New(event, data)
	if err != nil {
		panic(err)
	}
	return env
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("%s: empty payload", e.Event)
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("%s: %w", e.Event, err)
	}
	return nil
}
