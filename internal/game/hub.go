package game

import (
	"context"
	"time"

	"tinyboard/internal/logging"
	"tinyboard/internal/rules"
)

const reapInterval = 5 * time.Minute

// NewHub creates a hub that reaps rooms idle for longer than idle until
// ctx is done.
func NewHub(ctx context.Context, idle time.Duration) *Hub {
	h := &Hub{Rooms: make(map[string]*Room), idle: idle}
	go func() {
		ticker := time.NewTicker(reapInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				h.Reap(now)
			}
		}
	}()
	return h
}

// Get retrieves an existing room or creates a new one at the starting
// position.
func (h *Hub) Get(id string) *Room {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	if r, ok := h.Rooms[id]; ok {
		return r
	}
	r := &Room{
		ID:       id,
		engine:   rules.NewGame(),
		Clients:  make(map[string]*Client),
		LastSeen: time.Now(),
	}
	h.Rooms[id] = r
	return r
}

// Reap drops empty rooms not seen since now minus the idle timeout.
func (h *Hub) Reap(now time.Time) int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	n := 0
	for id, r := range h.Rooms {
		r.Mu.Lock()
		idle := len(r.Clients) == 0 && now.Sub(r.LastSeen) > h.idle
		r.Mu.Unlock()
		if idle {
			delete(h.Rooms, id)
			n++
		}
	}
	if n > 0 {
		logging.Debugf("reaped %d idle rooms", n)
	}
	return n
}
