package sage

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square
// bits 6-11:  to square
// bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
// bits 14-15: flags (0=normal, 1=promotion, 2=en passant, 3=castling)
type Move uint16

// Move flags.
const (
	FlagNormal    uint16 = 0 << 14
	FlagPromotion uint16 = 1 << 14
	FlagEnPassant uint16 = 2 << 14
	FlagCastling  uint16 = 3 << 14
)

// NoMove is the zero, invalid move.
const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move. promo must be Knight, Bishop,
// Rook, or Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | Move(FlagPromotion)
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagEnPassant)
}

// NewCastling creates a castling move, expressed as the king's two-file
// displacement.
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagCastling)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the move's flag bits.
func (m Move) Flag() uint16 {
	return uint16(m) & 0xC000
}

// Promotion returns the promotion piece type; meaningful only when
// IsPromotion is true.
func (m Move) Promotion() PieceType {
	return PieceType((m>>12)&3) + Knight
}

// IsPromotion reports whether this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag() == FlagPromotion
}

// IsEnPassant reports whether this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCastling reports whether this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flag() == FlagCastling
}

// FileChange returns the signed file displacement from origin to
// destination.
func (m Move) FileChange() int {
	return m.To().File() - m.From().File()
}

// RankChange returns the signed rank displacement from origin to
// destination.
func (m Move) RankChange() int {
	return m.To().Rank() - m.From().Rank()
}

// IsDiagonal reports whether the move travels along a diagonal.
func (m Move) IsDiagonal() bool {
	df := abs(m.FileChange())
	return df != 0 && df == abs(m.RankChange())
}

// IsAxial reports whether the move travels along a rank or a file.
func (m Move) IsAxial() bool {
	if m.From() == m.To() {
		return false
	}
	return m.FileChange() == 0 || m.RankChange() == 0
}

// IsKnightJump reports whether the move has knight geometry.
func (m Move) IsKnightJump() bool {
	df, dr := abs(m.FileChange()), abs(m.RankChange())
	return (df == 1 && dr == 2) || (df == 2 && dr == 1)
}

// String returns the UCI form of the move ("e2e4", "e7e8q"), or "0000"
// for NoMove.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// ParsePromotionChar maps a lowercase UCI promotion letter to its piece
// type, or NoPieceType if invalid.
func ParsePromotionChar(c byte) PieceType {
	switch c {
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	default:
		return NoPieceType
	}
}

// ParseMove parses a UCI move string against a game, classifying
// castling and en passant from the position.
func (g *Game) ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		promo := ParsePromotionChar(s[4])
		if promo == NoPieceType {
			return NoMove, fmt.Errorf("invalid promotion piece %q", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := g.board.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	switch {
	case piece.Type() == King && abs(int(to)-int(from)) == 2:
		return NewCastling(from, to), nil
	case piece.Type() == Pawn && to == g.EnPassantSquare():
		return NewEnPassant(from, to), nil
	default:
		return NewMove(from, to), nil
	}
}
