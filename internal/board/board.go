package board

import (
	"errors"
	"fmt"
)

// Size is the number of rows and columns on the board.
const Size = 8

// ErrBadSquare is returned when an algebraic square cannot be parsed.
var ErrBadSquare = errors.New("bad square")

// PieceType identifies a chess piece by its single-letter code.
type PieceType string

const (
	Pawn   PieceType = "p"
	Knight PieceType = "n"
	Bishop PieceType = "b"
	Rook   PieceType = "r"
	Queen  PieceType = "q"
	King   PieceType = "k"
)

// Color is a side of the board.
type Color string

const (
	NoColor Color = ""
	White   Color = "w"
	Black   Color = "b"
)

// Class returns the CSS-style class name for the color.
func (c Color) Class() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return ""
	}
}

// Piece is an immutable piece value.
type Piece struct {
	Type  PieceType
	Color Color
}

// Role is the local player's side. The zero value is a spectator.
type Role struct {
	color Color
}

var (
	Spectator = Role{}
	AsWhite   = Role{color: White}
	AsBlack   = Role{color: Black}
)

// RoleFor converts a wire color code into a role. Anything other than
// "w" or "b" yields a spectator.
func RoleFor(code string) Role {
	switch Color(code) {
	case White:
		return AsWhite
	case Black:
		return AsBlack
	default:
		return Spectator
	}
}

// Color returns the role's side, NoColor for spectators.
func (r Role) Color() Color { return r.color }

// IsSpectator reports whether the role has no side.
func (r Role) IsSpectator() bool { return r.color == NoColor }

// Owns reports whether pieces of color c belong to the role.
func (r Role) Owns(c Color) bool { return r.color != NoColor && r.color == c }

func (r Role) String() string {
	if r.IsSpectator() {
		return "spectator"
	}
	return r.color.Class()
}

// Square is a board coordinate. Row 0 is rank 8, column 0 is file a.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// Algebraic returns the square in algebraic notation, e.g. "e4".
func (s Square) Algebraic() string {
	return fmt.Sprintf("%c%d", rune('a'+s.Col), Size-s.Row)
}

func (s Square) String() string { return s.Algebraic() }

// ParseSquare converts algebraic notation back into a Square.
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrBadSquare, alg)
	}
	file, rank := alg[0], alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrBadSquare, alg)
	}
	return Square{Row: Size - int(rank-'0'), Col: int(file - 'a')}, nil
}

// Board is an 8x8 grid of optional pieces.
type Board [Size][Size]*Piece

// At returns the piece on sq, or nil.
func (b Board) At(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return b[sq.Row][sq.Col]
}
