package handlers

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"tinyboard/internal/board"
	"tinyboard/internal/game"
	"tinyboard/internal/logging"
	"tinyboard/internal/protocol"
	"tinyboard/internal/render"
	"tinyboard/internal/templates"
	"tinyboard/internal/transport"
	"tinyboard/pkg/utils"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Hub      *game.Hub
	Renderer *render.Renderer
	Ping     time.Duration
}

// NewHandler creates a new handler instance
func NewHandler(hub *game.Hub, renderer *render.Renderer, ping time.Duration) *Handler {
	return &Handler{Hub: hub, Renderer: renderer, Ping: ping}
}

// Router registers every route on a chi mux.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/healthz", h.HandleHealth)
	r.Get("/new", h.HandleNew)
	r.Get("/ws/{id}", h.HandleWS)
	r.Get("/state/{id}", h.HandleState)
	r.Get("/board/{id}", h.HandleBoard)
	r.Get("/", h.HandleHome)
	r.Get("/{id}", h.HandlePage)
	return r
}

// HandleNew creates a new game and redirects to it
func (h *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	http.Redirect(w, r, "/"+id, http.StatusFound)
}

// HandleHome serves the home page
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	templates.WriteHomeHTML(w)
}

// HandlePage serves the game page with the board as a spectator sees it.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, _ := h.Hub.Get(id).Position()
	templates.WriteGameHTML(w, id, h.Renderer.Render(b, board.Spectator))
}

// HandleBoard serves only the board markup of a room, rendered for the
// role given in the query. The game page swaps it in after every event.
func (h *Handler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	role := board.RoleFor(r.URL.Query().Get("role"))
	b, _ := h.Hub.Get(id).Position()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.WriteBoardHTML(w, h.Renderer.Render(b, role)); err != nil {
		logging.Errorf("board %s: %v", id, err)
	}
}

// GameState is the JSON summary of a room.
type GameState struct {
	ID       string `json:"id"`
	FEN      string `json:"fen"`
	Turn     string `json:"turn"`
	Watchers int    `json:"watchers"`
}

// HandleState reports the room's position.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	room := h.Hub.Get(id)
	_, fen := room.Position()
	turn := "w"
	if f := strings.Fields(fen); len(f) > 1 {
		turn = f[1]
	}
	WriteJSON(w, http.StatusOK, GameState{ID: id, FEN: fen, Turn: turn, Watchers: room.Watchers()})
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleWS attaches a websocket client to a room and relays its moves.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	room := h.Hub.Get(id)

	conn, err := transport.Accept(w, r, h.Ping)
	if err != nil {
		logging.Errorf("ws %s: %v", id, err)
		return
	}
	defer conn.Close()

	clientID := utils.RandomHex(8)
	role := room.Join(clientID, conn)
	defer room.Leave(clientID)
	logging.Infof("room %s: client %s from %s joined as %s", id, clientID, ClientIP(r), role)

	for {
		env, err := conn.Read()
		if err != nil {
			logging.Debugf("room %s: client %s left: %v", id, clientID, err)
			return
		}
		room.Touch()
		if env.Event != protocol.EventMove {
			logging.Debugf("room %s: ignoring %q from %s", id, env.Event, clientID)
			continue
		}
		var m protocol.Move
		if err := env.Decode(&m); err != nil {
			logging.Debugf("room %s: %v", id, err)
			continue
		}
		if err := room.Move(clientID, m); err != nil {
			logging.Debugf("room %s: move %s by %s: %v", id, m, clientID, err)
		}
	}
}

// ClientIP extracts the client IP from the request
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
