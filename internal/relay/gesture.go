package relay

import (
	"errors"
	"fmt"
	"strings"

	"tinyboard/internal/board"
)

// GestureKind is one step of a drag-and-drop interaction.
type GestureKind int

const (
	GestureDragStart GestureKind = iota
	GestureDragOver
	GestureDrop
	GestureDragEnd
)

func (k GestureKind) String() string {
	switch k {
	case GestureDragStart:
		return "dragstart"
	case GestureDragOver:
		return "dragover"
	case GestureDrop:
		return "drop"
	case GestureDragEnd:
		return "dragend"
	default:
		return "unknown"
	}
}

// Gesture is a single UI event aimed at a square.
type Gesture struct {
	Kind   GestureKind
	Square board.Square
}

// ErrQuit is returned by ParseCommand for "quit".
var ErrQuit = errors.New("quit")

// ParseCommand turns a line typed in the terminal client into gestures:
//
//	drag e2    start dragging the piece on e2
//	drop e4    drop the dragged piece on e4
//	end        end the drag without dropping
//	e2e4       the full gesture: drag, drop and end
//
// Drag-end clears the drag no matter which square receives it.
func ParseCommand(line string) ([]Gesture, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, nil
	}
	switch fields[0] {
	case "quit", "exit":
		return nil, ErrQuit
	case "end":
		return []Gesture{{Kind: GestureDragEnd}}, nil
	case "drag", "drop":
		if len(fields) != 2 {
			return nil, fmt.Errorf("usage: %s <square>", fields[0])
		}
		sq, err := board.ParseSquare(fields[1])
		if err != nil {
			return nil, err
		}
		if fields[0] == "drag" {
			return []Gesture{{Kind: GestureDragStart, Square: sq}}, nil
		}
		return []Gesture{{Kind: GestureDragOver, Square: sq}, {Kind: GestureDrop, Square: sq}}, nil
	}

	joined := strings.Join(fields, "")
	if len(joined) != 4 {
		return nil, fmt.Errorf("unknown command %q", line)
	}
	from, err := board.ParseSquare(joined[:2])
	if err != nil {
		return nil, err
	}
	to, err := board.ParseSquare(joined[2:])
	if err != nil {
		return nil, err
	}
	return []Gesture{
		{Kind: GestureDragStart, Square: from},
		{Kind: GestureDragOver, Square: to},
		{Kind: GestureDrop, Square: to},
		{Kind: GestureDragEnd, Square: from},
	}, nil
}
