package sage

import (
	"fmt"
	"strconv"
	"strings"
)

// Board maps each of the twelve pieces to its occupancy bitboard, with
// cached per-color and combined occupancy. It carries no game state (turn,
// rights, clocks); Game owns those. A Board is a plain value: copying the
// struct copies the position.
//
// Invariant: at most one piece occupies any square. Every mutation clears
// the destination across all piece bitboards before setting the new bit.
type Board struct {
	pieces   [2][6]Bitboard
	occupied [2]Bitboard
	all      Bitboard
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns a board with the standard starting layout.
func NewStandardBoard() *Board {
	b, _ := ParseBoardFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	return b
}

// Pieces returns the occupancy of one piece.
func (b *Board) Pieces(pt PieceType, c Color) Bitboard {
	return b.pieces[c][pt]
}

// Occupied returns the occupancy of one color.
func (b *Board) Occupied(c Color) Bitboard {
	return b.occupied[c]
}

// AllOccupied returns the combined occupancy.
func (b *Board) AllOccupied() Bitboard {
	return b.all
}

// IsEmpty reports whether the square holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.all&SquareBB(sq) == 0
}

// PieceAt returns the piece on sq, or NoPiece. The combined-occupancy
// check short-circuits empty squares before the per-piece probe.
func (b *Board) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if b.all&bb == 0 {
		return NoPiece
	}
	c := Black
	if b.occupied[White]&bb != 0 {
		c = White
	}
	for pt := Pawn; pt <= King; pt++ {
		if b.pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// Place puts piece on sq, displacing whatever was there.
func (b *Board) Place(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	b.Remove(sq)
	bb := SquareBB(sq)
	b.pieces[piece.Color()][piece.Type()] |= bb
	b.occupied[piece.Color()] |= bb
	b.all |= bb
}

// Remove clears sq and returns the piece that was there, if any.
func (b *Board) Remove(sq Square) Piece {
	piece := b.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}
	bb := SquareBB(sq)
	b.pieces[piece.Color()][piece.Type()] &^= bb
	b.occupied[piece.Color()] &^= bb
	b.all &^= bb
	return piece
}

// Move relocates the piece on from to to. When both squares are occupied
// the pieces are swapped rather than the destination piece being dropped;
// capture removal is the caller's responsibility.
func (b *Board) Move(from, to Square) {
	if from == to {
		return
	}
	moving := b.PieceAt(from)
	if moving == NoPiece {
		return
	}
	displaced := b.Remove(to)
	b.Remove(from)
	b.Place(moving, to)
	if displaced != NoPiece {
		b.Place(displaced, from)
	}
}

// KingSquare returns the square of c's king, or NoSquare if the board has
// none (partial positions are allowed).
func (b *Board) KingSquare(c Color) Square {
	return b.pieces[c][King].LSB()
}

// Locations returns the squares occupied by the given piece, in ascending
// order. The PGN layer uses this for source-square disambiguation.
func (b *Board) Locations(piece Piece) []Square {
	if piece == NoPiece {
		return nil
	}
	return b.pieces[piece.Color()][piece.Type()].Squares()
}

// Count returns the number of pieces of the given kind and color.
func (b *Board) Count(pt PieceType, c Color) int {
	return b.pieces[c][pt].PopCount()
}

// AttackersTo returns the pieces of color c attacking sq, computed by
// generating reverse attacks from sq for each piece kind and masking
// against that kind's actual occupancy. No per-attacker iteration.
func (b *Board) AttackersTo(sq Square, c Color) Bitboard {
	return b.attackersTo(sq, c, b.all)
}

func (b *Board) attackersTo(sq Square, c Color, occupied Bitboard) Bitboard {
	return (pawnAttacks[c.Other()][sq] & b.pieces[c][Pawn]) |
		(knightAttacks[sq] & b.pieces[c][Knight]) |
		(kingAttacks[sq] & b.pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (b.pieces[c][Bishop] | b.pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (b.pieces[c][Rook] | b.pieces[c][Queen]))
}

// IsAttacked reports whether sq is attacked by any piece of color c.
func (b *Board) IsAttacked(sq Square, c Color) bool {
	return b.AttackersTo(sq, c) != 0
}

// attackersToKing returns the pieces attacking c's king, or empty if the
// board has no king of that color.
func (b *Board) attackersToKing(c Color) Bitboard {
	ksq := b.KingSquare(c)
	if ksq == NoSquare {
		return EmptyBB
	}
	return b.AttackersTo(ksq, c.Other())
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// FEN returns the board field of a FEN string: ranks 8 down to 1 joined
// by '/', digits for empty runs, letters for pieces.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParseBoardFEN parses the board field of a FEN string.
func ParseBoardFEN(field string) (*Board, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	b := NewBoard()
	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0
		for j := 0; j < len(rankStr); j++ {
			if file > 7 {
				return nil, fmt.Errorf("too many squares in rank %d", rank+1)
			}
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return nil, fmt.Errorf("invalid piece character %q", c)
			}
			b.Place(piece, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("rank %d describes %d files, want 8", rank+1, file)
		}
	}
	return b, nil
}

// String renders the board as an ASCII diagram with rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := b.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
