package render

import (
	"path"

	"tinyboard/internal/board"
)

// Shade is the checkerboard color of a square.
type Shade string

const (
	Light Shade = "light"
	Dark  Shade = "dark"
)

// Container classes.
const (
	ClassBoard   = "chessboard"
	ClassFlipped = "flipped"
)

// glyphs maps non-pawn piece types to their visual. The piece's color
// class tells the sides apart.
var glyphs = map[board.PieceType]string{
	board.Rook:   "♜",
	board.Knight: "♞",
	board.Bishop: "♝",
	board.Queen:  "♛",
	board.King:   "♚",
}

// PieceView is the visual for one piece. Exactly one of Image or Glyph is
// used: Image for pawns, Glyph for everything else. Glyph may be empty for
// unknown piece types.
type PieceView struct {
	Type      board.PieceType
	Color     board.Color
	Image     string
	Glyph     string
	Draggable bool
}

// Class returns "white" or "black".
func (p PieceView) Class() string { return p.Color.Class() }

// IsImage reports whether the piece is drawn from an image asset.
func (p PieceView) IsImage() bool { return p.Image != "" }

// SquareView is one cell of the rendered grid.
type SquareView struct {
	Square board.Square
	Shade  Shade
	Piece  *PieceView
}

// View is a complete rendering of the board for one role.
type View struct {
	Flipped bool
	Squares [board.Size][board.Size]SquareView
}

// Classes returns the container's class list.
func (v View) Classes() []string {
	if v.Flipped {
		return []string{ClassBoard, ClassFlipped}
	}
	return []string{ClassBoard}
}

// At returns the square view for sq.
func (v View) At(sq board.Square) SquareView { return v.Squares[sq.Row][sq.Col] }

// Draggable lists the squares holding a draggable piece, in row-major order.
func (v View) Draggable() []board.Square {
	var out []board.Square
	for _, row := range v.Squares {
		for _, sv := range row {
			if sv.Piece != nil && sv.Piece.Draggable {
				out = append(out, sv.Square)
			}
		}
	}
	return out
}

// Renderer turns a board and role into a View.
type Renderer struct {
	imagePrefix string
}

// New creates a renderer whose pawn images live under imagePrefix.
func New(imagePrefix string) *Renderer {
	if imagePrefix == "" {
		imagePrefix = "/images"
	}
	return &Renderer{imagePrefix: imagePrefix}
}

// Render builds a fresh view. It keeps no state between calls.
func (r *Renderer) Render(b board.Board, role board.Role) View {
	v := View{Flipped: role.Color() == board.Black}
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Square{Row: row, Col: col}
			sv := SquareView{Square: sq, Shade: shadeOf(sq)}
			if p := b.At(sq); p != nil {
				pv := r.piece(*p, role)
				sv.Piece = &pv
			}
			v.Squares[row][col] = sv
		}
	}
	return v
}

func (r *Renderer) piece(p board.Piece, role board.Role) PieceView {
	pv := PieceView{Type: p.Type, Color: p.Color, Draggable: role.Owns(p.Color)}
	if p.Type == board.Pawn {
		pv.Image = r.pawnImage(p.Color)
	} else {
		pv.Glyph = glyphs[p.Type]
	}
	return pv
}

func (r *Renderer) pawnImage(c board.Color) string {
	if c == board.Black {
		return path.Join(r.imagePrefix, "bp.png")
	}
	return path.Join(r.imagePrefix, "wp.png")
}

func shadeOf(sq board.Square) Shade {
	if (sq.Row+sq.Col)%2 == 0 {
		return Light
	}
	return Dark
}
