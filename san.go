package sage

import (
	"fmt"
	"strings"
)

// IsCapture reports whether the move captures a piece in this game's
// current position.
func (g *Game) IsCapture(m Move) bool {
	return m.IsEnPassant() || !g.board.IsEmpty(m.To())
}

// SAN renders a move in Standard Algebraic Notation for the current
// position. The move must be legal here for the output to be meaningful.
func (g *Game) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}
	if m.IsCastling() {
		return g.withSuffix(m, castleSAN(m))
	}

	from, to := m.From(), m.To()
	piece := g.board.PieceAt(from)
	if piece == NoPiece {
		return m.String() // fall back to UCI
	}
	pt := piece.Type()

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(g.disambiguation(m, pt))
	}

	if g.IsCapture(m) {
		if pt == Pawn {
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.Promotion()])
	}

	return g.withSuffix(m, sb.String())
}

func castleSAN(m Move) string {
	if m.To() > m.From() {
		return "O-O"
	}
	return "O-O-O"
}

// withSuffix appends the check or checkmate marker by playing the move
// on a copy.
func (g *Game) withSuffix(m Move, san string) string {
	next := g.Copy()
	next.apply(m)
	switch {
	case next.IsCheckmate():
		return san + "#"
	case next.InCheck():
		return san + "+"
	default:
		return san
	}
}

// disambiguation returns the source file, rank, or square needed to make
// the move unambiguous among same-type pieces reaching the same square.
func (g *Game) disambiguation(m Move, pt PieceType) string {
	from, to := m.From(), m.To()
	pieces := g.board.pieces[g.turn][pt]

	var rivals []Square
	for _, other := range g.legalMoves() {
		if other.To() != to || other.From() == from {
			continue
		}
		if pieces.IsSet(other.From()) {
			rivals = append(rivals, other.From())
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return string('a' + byte(from.File()))
	case !sameRank:
		return string('1' + byte(from.Rank()))
	default:
		return from.String()
	}
}

// ParseSAN resolves a SAN string ("Nf3", "exd6", "O-O", "e8=Q+") against
// the current position's legal moves.
func (g *Game) ParseSAN(s string) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	// Castling, with zero-style spellings accepted.
	if s == "O-O" || s == "0-0" {
		return g.findCastle(true, orig)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return g.findCastle(false, orig)
	}

	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 && idx+1 < len(s) {
		switch s[idx+1] {
		case 'N':
			promo = Knight
		case 'B':
			promo = Bishop
		case 'R':
			promo = Rook
		case 'Q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion in %q", orig)
		}
		s = s[:idx]
	}

	isCapture := strings.ContainsRune(s, 'x')
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, fmt.Errorf("invalid piece letter in %q", orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid move %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid destination in %q", orig)
	}
	s = s[:len(s)-2]

	fileHint, rankHint := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			fileHint = int(c - 'a')
		case c >= '1' && c <= '8':
			rankHint = int(c - '1')
		default:
			return NoMove, fmt.Errorf("invalid disambiguation in %q", orig)
		}
	}

	for _, m := range g.legalMoves() {
		if m.To() != dest || m.IsCastling() {
			continue
		}
		from := m.From()
		if g.board.PieceAt(from).Type() != pt {
			continue
		}
		if fileHint >= 0 && from.File() != fileHint {
			continue
		}
		if rankHint >= 0 && from.Rank() != rankHint {
			continue
		}
		if isCapture && !g.IsCapture(m) {
			continue
		}
		if promo != NoPieceType {
			if !m.IsPromotion() || m.Promotion() != promo {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("no legal move matches %q", orig)
}

func (g *Game) findCastle(kingside bool, orig string) (Move, error) {
	for _, m := range g.legalMoves() {
		if m.IsCastling() && (m.To() > m.From()) == kingside {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("no legal move matches %q", orig)
}
