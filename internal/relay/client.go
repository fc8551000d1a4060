package relay

import (
	"context"
	"fmt"

	"tinyboard/internal/board"
	"tinyboard/internal/logging"
	"tinyboard/internal/protocol"
	"tinyboard/internal/render"
	"tinyboard/internal/rules"
)

// Emitter sends events to the server.
type Emitter interface {
	Emit(env protocol.Envelope) error
}

// Display shows a rendered view.
type Display interface {
	Show(v render.View)
}

// SquareHandler receives the drag-and-drop gestures aimed at one square.
type SquareHandler interface {
	DragStart()
	DragEnd()
	DragOver() bool
	Drop() error
}

// Client ties UI state, the rules engine, the renderer and the outbound
// channel together. It is not safe for concurrent use; Run serialises all
// input onto one goroutine.
type Client struct {
	state    State
	engine   rules.Engine
	renderer *render.Renderer
	out      Emitter
	display  Display

	view    render.View
	squares [board.Size][board.Size]SquareHandler
}

// NewClient creates a client with a spectator role and no drag.
func NewClient(engine rules.Engine, renderer *render.Renderer, out Emitter, display Display) *Client {
	return &Client{
		engine:   engine,
		renderer: renderer,
		out:      out,
		display:  display,
	}
}

// State returns the current UI state.
func (c *Client) State() State { return c.state }

// View returns the last rendered view.
func (c *Client) View() render.View { return c.view }

// Square returns the handler bound to sq by the last render.
func (c *Client) Square(sq board.Square) SquareHandler {
	if !sq.Valid() {
		return nil
	}
	return c.squares[sq.Row][sq.Col]
}

// Render rebuilds the view and every square handler from scratch.
func (c *Client) Render() {
	c.view = c.renderer.Render(c.engine.CurrentBoard(), c.state.Role)
	for row := range c.view.Squares {
		for col := range c.view.Squares[row] {
			c.squares[row][col] = &squareHandler{c: c, sv: c.view.Squares[row][col]}
		}
	}
	if c.display != nil {
		c.display.Show(c.view)
	}
}

// HandleServerEvent applies one inbound event and re-renders if asked.
func (c *Client) HandleServerEvent(env protocol.Envelope) error {
	s, cmd, err := Apply(c.state, c.engine, env)
	c.state = s
	if err != nil {
		return fmt.Errorf("handle %s: %w", env.Event, err)
	}
	return c.run(cmd)
}

// HandleGesture routes a gesture to the handler of its square.
func (c *Client) HandleGesture(g Gesture) error {
	h := c.Square(g.Square)
	if h == nil {
		return fmt.Errorf("gesture on %v: %w", g.Square, board.ErrBadSquare)
	}
	switch g.Kind {
	case GestureDragStart:
		h.DragStart()
	case GestureDragEnd:
		h.DragEnd()
	case GestureDragOver:
		h.DragOver()
	case GestureDrop:
		return h.Drop()
	}
	return nil
}

// Run renders once, then processes server events and gestures one at a
// time until ctx is done or inbound is closed. Handler errors are logged
// and do not stop the loop.
func (c *Client) Run(ctx context.Context, inbound <-chan protocol.Envelope, gestures <-chan Gesture) error {
	c.Render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env, ok := <-inbound:
			if !ok {
				return nil
			}
			if err := c.HandleServerEvent(env); err != nil {
				logging.Errorf("%v", err)
			}
		case g, ok := <-gestures:
			if !ok {
				gestures = nil
				continue
			}
			if err := c.HandleGesture(g); err != nil {
				logging.Errorf("%v", err)
			}
		}
	}
}

func (c *Client) run(cmd Command) error {
	if cmd.Emit != nil {
		logging.Debugf("move from %s to %s", cmd.Emit.From, cmd.Emit.To)
		env, err := protocol.New(protocol.EventMove, cmd.Emit)
		if err != nil {
			return err
		}
		if err := c.out.Emit(env); err != nil {
			return fmt.Errorf("emit move: %w", err)
		}
	}
	if cmd.Render {
		c.Render()
	}
	return nil
}

type squareHandler struct {
	c  *Client
	sv render.SquareView
}

func (h *squareHandler) DragStart() {
	h.c.state = DragStart(h.c.state, h.sv.Square, h.sv.Piece)
}

func (h *squareHandler) DragEnd() {
	h.c.state = DragEnd(h.c.state)
}

func (h *squareHandler) DragOver() bool {
	return DragOver(h.c.state)
}

func (h *squareHandler) Drop() error {
	s, cmd := Drop(h.c.state, h.sv.Square)
	h.c.state = s
	return h.c.run(cmd)
}
