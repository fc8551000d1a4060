package game

import (
	"errors"
	"fmt"
	"time"

	"tinyboard/internal/board"
	"tinyboard/internal/logging"
	"tinyboard/internal/protocol"
	"tinyboard/internal/transport"
)

// Touch updates the last seen timestamp for a room
func (r *Room) Touch() {
	r.Mu.Lock()
	r.LastSeen = time.Now()
	r.Mu.Unlock()
}

// Join seats a client: white if free, then black, otherwise spectator.
// The client is told its role and then sent the current position.
func (r *Room) Join(clientID string, sink Sink) board.Role {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	role := board.Spectator
	switch {
	case r.White == "":
		r.White = clientID
		role = board.AsWhite
	case r.Black == "":
		r.Black = clientID
		role = board.AsBlack
	}
	c := &Client{ID: clientID, Role: role, sink: sink}
	r.Clients[clientID] = c
	r.LastSeen = time.Now()

	if role.IsSpectator() {
		r.emit(c, protocol.MustNew(protocol.EventSpectatorRole, nil))
	} else {
		r.emit(c, protocol.MustNew(protocol.EventPlayerRole, string(role.Color())))
	}
	r.emit(c, protocol.MustNew(protocol.EventBoardState, r.engine.FEN()))
	logging.Debugf("room %s: %s joined as %s", r.ID, clientID, role)
	return role
}

// Leave removes a client and frees its seat.
func (r *Room) Leave(clientID string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	delete(r.Clients, clientID)
	if r.White == clientID {
		r.White = ""
	}
	if r.Black == clientID {
		r.Black = ""
	}
	r.LastSeen = time.Now()
}

// Move plays m for clientID. Moves out of turn are dropped silently; a
// move the rules reject is answered with invalidMove to the sender only.
// Accepted moves are broadcast to everyone, followed by the new position.
func (r *Room) Move(clientID string, m protocol.Move) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	c, ok := r.Clients[clientID]
	if !ok {
		return ErrUnknownClient
	}
	if c.Role.IsSpectator() {
		return ErrSpectator
	}
	if r.seatToMove() != clientID {
		return ErrNotYourTurn
	}

	r.LastSeen = time.Now()
	if err := r.engine.ApplyMove(m); err != nil {
		r.emit(c, protocol.MustNew(protocol.EventInvalidMove, m))
		return fmt.Errorf("room %s: %w", r.ID, err)
	}

	r.broadcast(protocol.MustNew(protocol.EventMove, m))
	r.broadcast(protocol.MustNew(protocol.EventBoardState, r.engine.FEN()))
	return nil
}

// Position returns the current board and FEN.
func (r *Room) Position() (board.Board, string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.engine.CurrentBoard(), r.engine.FEN()
}

// Watchers returns the number of connected clients.
func (r *Room) Watchers() int {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return len(r.Clients)
}

func (r *Room) seatToMove() string {
	if r.engine.Turn() == board.Black {
		return r.Black
	}
	return r.White
}

// broadcast must be called with the lock held.
func (r *Room) broadcast(env protocol.Envelope) {
	for _, c := range r.Clients {
		r.emit(c, env)
	}
}

func (r *Room) emit(c *Client, env protocol.Envelope) {
	err := c.sink.Emit(env)
	switch {
	case err == nil:
	case errors.Is(err, transport.ErrBufferFull):
		logging.Warnf("room %s: %s is not draining, dropped %s", r.ID, c.ID, env.Event)
	default:
		logging.Debugf("room %s: drop %s for %s: %v", r.ID, env.Event, c.ID, err)
	}
}
