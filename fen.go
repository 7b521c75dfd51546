package sage

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN returns the full six-field FEN string for the current position:
// board, side to move, castling rights, en passant target, halfmove
// clock, fullmove number.
func (g *Game) FEN() string {
	var sb strings.Builder
	sb.WriteString(g.board.FEN())

	sb.WriteByte(' ')
	if g.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(g.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(g.EnPassantSquare().String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.halfmoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.fullmove))

	return sb.String()
}

// NewGameFromFEN builds a game from a FEN position string. The clock
// fields are optional and default to 0 and 1. Malformed input returns an
// error; it never panics.
func NewGameFromFEN(fen string) (*Game, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	board, err := ParseBoardFEN(parts[0])
	if err != nil {
		return nil, err
	}

	g := &Game{
		board:    board,
		fullmove: 1,
		startEP:  NoSquare,
	}

	switch parts[1] {
	case "w":
		g.turn = White
	case "b":
		g.turn = Black
	default:
		return nil, fmt.Errorf("invalid side to move %q", parts[1])
	}

	g.castling, err = ParseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square %q", parts[3])
		}
		g.startEP = sq
	}

	if len(parts) > 4 {
		g.halfmoves, err = strconv.Atoi(parts[4])
		if err != nil || g.halfmoves < 0 {
			return nil, fmt.Errorf("invalid halfmove clock %q", parts[4])
		}
	}
	if len(parts) > 5 {
		g.fullmove, err = strconv.Atoi(parts[5])
		if err != nil || g.fullmove < 1 {
			return nil, fmt.Errorf("invalid fullmove number %q", parts[5])
		}
	}

	g.checkers = g.board.attackersToKing(g.turn)
	g.hash = hashPosition(g.board, g.turn, g.castling, g.startEP)
	return g, nil
}
