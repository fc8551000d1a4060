package render

import (
	"strings"

	"tinyboard/internal/board"
)

// pawnGlyph stands in for the pawn image on a terminal.
const pawnGlyph = "♟"

// Text draws the view for a terminal. Flipped views are printed from
// black's side; each row is labelled with its rank and the last line with
// files. Draggable pieces are marked with '*'.
func Text(v View) string {
	rows, cols := order(v.Flipped)
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteByte(byte('0' + board.Size - row))
		sb.WriteByte(' ')
		for _, col := range cols {
			sb.WriteString(cell(v.Squares[row][col]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for _, col := range cols {
		sb.WriteByte(' ')
		sb.WriteByte(byte('a' + col))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func order(flipped bool) (rows, cols []int) {
	rows = make([]int, board.Size)
	cols = make([]int, board.Size)
	for i := 0; i < board.Size; i++ {
		if flipped {
			rows[i], cols[i] = board.Size-1-i, board.Size-1-i
		} else {
			rows[i], cols[i] = i, i
		}
	}
	return rows, cols
}

func cell(sv SquareView) string {
	if sv.Piece == nil {
		if sv.Shade == Light {
			return " . "
		}
		return " : "
	}
	glyph := sv.Piece.Glyph
	if sv.Piece.IsImage() {
		glyph = pawnGlyph
	}
	if glyph == "" {
		glyph = "?"
	}
	mark := " "
	if sv.Piece.Draggable {
		mark = "*"
	}
	return glyph + string(sv.Piece.Color) + mark
}
