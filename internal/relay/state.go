package relay

import (
	"tinyboard/internal/board"
	"tinyboard/internal/protocol"
	"tinyboard/internal/render"
)

// DragState is the in-flight drag: what is being dragged and from where.
type DragState struct {
	Piece  board.Piece
	Source board.Square
}

// State is the board client's UI state. The board itself lives in the
// rules engine.
type State struct {
	Role board.Role
	Drag *DragState
}

// Command tells the caller what a transition asks for.
type Command struct {
	Emit   *protocol.Move
	Render bool
}

// MoveFor builds the descriptor for a drag from one square to another.
// Promotion is always a queen.
func MoveFor(from, to board.Square) protocol.Move {
	return protocol.Move{
		From:      from.Algebraic(),
		To:        to.Algebraic(),
		Promotion: protocol.PromoteQueen,
	}
}

// DragStart records a drag from sq if the piece there is draggable.
func DragStart(s State, sq board.Square, pv *render.PieceView) State {
	if pv == nil || !pv.Draggable {
		return s
	}
	s.Drag = &DragState{Piece: board.Piece{Type: pv.Type, Color: pv.Color}, Source: sq}
	return s
}

// DragEnd clears the drag whether or not a drop happened.
func DragEnd(s State) State {
	s.Drag = nil
	return s
}

// DragOver reports whether the square accepts a drop. Every square does.
func DragOver(State) bool { return true }

// Drop turns the active drag into an outbound move. Without a drag it
// does nothing.
func Drop(s State, target board.Square) (State, Command) {
	if s.Drag == nil {
		return s, Command{}
	}
	m := MoveFor(s.Drag.Source, target)
	return s, Command{Emit: &m}
}
