package game

import (
	"errors"
	"sync"
	"time"

	"tinyboard/internal/board"
	"tinyboard/internal/protocol"
	"tinyboard/internal/rules"
)

var (
	ErrUnknownClient = errors.New("unknown client")
	ErrSpectator     = errors.New("spectators cannot move")
	ErrNotYourTurn   = errors.New("not your turn")
)

// Sink receives events for one connected client.
type Sink interface {
	Emit(env protocol.Envelope) error
}

// Hub manages all active rooms
type Hub struct {
	Mu    sync.Mutex
	Rooms map[string]*Room
	idle  time.Duration
}

// Room is one game: a rules engine, two seats and everyone watching.
type Room struct {
	Mu       sync.Mutex
	ID       string
	engine   rules.Engine
	Clients  map[string]*Client
	White    string
	Black    string
	LastSeen time.Time
}

// Client is a connection attached to a room.
type Client struct {
	ID   string
	Role board.Role
	sink Sink
}
