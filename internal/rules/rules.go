package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"

	"tinyboard/internal/board"
	"tinyboard/internal/logging"
	"tinyboard/internal/protocol"
)

// ErrIllegalMove is returned when a move is not legal in the current position.
var ErrIllegalMove = errors.New("illegal move")

// Engine is the rules capability the board depends on. It owns the
// position; callers only load snapshots, apply moves and read the board.
type Engine interface {
	LoadPosition(fen string) error
	ApplyMove(m protocol.Move) error
	CurrentBoard() board.Board
	FEN() string
	Turn() board.Color
}

// Game is an Engine backed by corentings/chess. It is not safe for
// concurrent use.
type Game struct {
	g *chess.Game
}

// NewGame returns an engine at the standard starting position.
func NewGame() *Game {
	return &Game{g: chess.NewGame()}
}

// LoadPosition replaces the position with the given FEN snapshot.
func (e *Game) LoadPosition(fen string) error {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return fmt.Errorf("load position: %w", err)
	}
	e.g = chess.NewGame(opt)
	logging.Debugf("position loaded - FEN: %s", e.g.FEN())
	return nil
}

// ApplyMove plays a move descriptor. Illegal moves are rejected by the
// library and the position is left as it was.
func (e *Game) ApplyMove(m protocol.Move) error {
	uci, err := e.uci(m)
	if err != nil {
		return err
	}
	// Game.Move trusts its input, so only moves the position generates are played.
	for _, mv := range e.g.ValidMoves() {
		if mv.String() != uci {
			continue
		}
		if err := e.g.Move(&mv, nil); err != nil {
			return fmt.Errorf("apply %s: %w", uci, err)
		}
		return nil
	}
	return fmt.Errorf("apply %s: %w", uci, ErrIllegalMove)
}

// CurrentBoard returns a copy of the position as a board grid.
func (e *Game) CurrentBoard() board.Board {
	var b board.Board
	cb := e.g.Position().Board()
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := cb.Piece(toSquare(board.Square{Row: row, Col: col}))
			if p == chess.NoPiece {
				continue
			}
			b[row][col] = &board.Piece{Type: pieceType(p.Type()), Color: color(p.Color())}
		}
	}
	return b
}

// FEN returns the current position snapshot.
func (e *Game) FEN() string { return e.g.FEN() }

// Turn returns the side to move.
func (e *Game) Turn() board.Color { return color(e.g.Position().Turn()) }

// uci converts a descriptor into UCI. The promotion suffix is kept only
// when a pawn reaches the last rank; a missing suffix there defaults to
// a queen.
func (e *Game) uci(m protocol.Move) (string, error) {
	from, err := board.ParseSquare(strings.ToLower(strings.TrimSpace(m.From)))
	if err != nil {
		return "", fmt.Errorf("move from: %w", err)
	}
	to, err := board.ParseSquare(strings.ToLower(strings.TrimSpace(m.To)))
	if err != nil {
		return "", fmt.Errorf("move to: %w", err)
	}
	uci := from.Algebraic() + to.Algebraic()

	piece := e.g.Position().Board().Piece(toSquare(from))
	if piece.Type() == chess.Pawn && (to.Row == 0 || to.Row == board.Size-1) {
		promo := strings.ToLower(strings.TrimSpace(m.Promotion))
		if promo == "" {
			promo = protocol.PromoteQueen
		}
		uci += promo
	}
	return uci, nil
}

func toSquare(sq board.Square) chess.Square {
	return chess.NewSquare(chess.File(sq.Col), chess.Rank(board.Size-1-sq.Row))
}

func pieceType(t chess.PieceType) board.PieceType {
	switch t {
	case chess.Pawn:
		return board.Pawn
	case chess.Knight:
		return board.Knight
	case chess.Bishop:
		return board.Bishop
	case chess.Rook:
		return board.Rook
	case chess.Queen:
		return board.Queen
	case chess.King:
		return board.King
	default:
		return ""
	}
}

func color(c chess.Color) board.Color {
	switch c {
	case chess.White:
		return board.White
	case chess.Black:
		return board.Black
	default:
		return board.NoColor
	}
}
