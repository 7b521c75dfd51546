package sage

import "fmt"

// CastlingRight is one of the four castling options. Each right carries
// the derived board constants castling needs: the squares that must be
// empty between king and rook, the king's path (checked for attacks), and
// the king and rook relocation squares.
type CastlingRight uint8

const (
	WhiteKingside CastlingRight = 1 << iota // K
	WhiteQueenside                          // Q
	BlackKingside                           // k
	BlackQueenside                          // q
)

// allRights lists the rights in FEN order.
var allRights = [4]CastlingRight{WhiteKingside, WhiteQueenside, BlackKingside, BlackQueenside}

// Color returns the side the right belongs to.
func (r CastlingRight) Color() Color {
	if r == WhiteKingside || r == WhiteQueenside {
		return White
	}
	return Black
}

// IsKingside reports whether the right is a kingside right.
func (r CastlingRight) IsKingside() bool {
	return r == WhiteKingside || r == BlackKingside
}

// EmptySquares returns the squares that must be unoccupied for the
// castle: f1,g1 / b1,c1,d1 and their rank-8 mirrors.
func (r CastlingRight) EmptySquares() Bitboard {
	switch r {
	case WhiteKingside:
		return SquareBB(F1) | SquareBB(G1)
	case WhiteQueenside:
		return SquareBB(B1) | SquareBB(C1) | SquareBB(D1)
	case BlackKingside:
		return SquareBB(F8) | SquareBB(G8)
	case BlackQueenside:
		return SquareBB(B8) | SquareBB(C8) | SquareBB(D8)
	}
	return EmptyBB
}

// KingStart returns the king's home square for the right's side.
func (r CastlingRight) KingStart() Square {
	if r.Color() == White {
		return E1
	}
	return E8
}

// KingDestination returns the king's post-castle square.
func (r CastlingRight) KingDestination() Square {
	switch r {
	case WhiteKingside:
		return G1
	case WhiteQueenside:
		return C1
	case BlackKingside:
		return G8
	default:
		return C8
	}
}

// KingPath returns the squares the king occupies or passes through,
// including its start. None may be attacked by the opponent.
func (r CastlingRight) KingPath() []Square {
	switch r {
	case WhiteKingside:
		return []Square{E1, F1, G1}
	case WhiteQueenside:
		return []Square{E1, D1, C1}
	case BlackKingside:
		return []Square{E8, F8, G8}
	default:
		return []Square{E8, D8, C8}
	}
}

// RookStart returns the rook's home square for the right.
func (r CastlingRight) RookStart() Square {
	switch r {
	case WhiteKingside:
		return H1
	case WhiteQueenside:
		return A1
	case BlackKingside:
		return H8
	default:
		return A8
	}
}

// RookDestination returns the rook's post-castle square.
func (r CastlingRight) RookDestination() Square {
	switch r {
	case WhiteKingside:
		return F1
	case WhiteQueenside:
		return D1
	case BlackKingside:
		return F8
	default:
		return D8
	}
}

// Char returns the FEN letter for the right.
func (r CastlingRight) Char() byte {
	switch r {
	case WhiteKingside:
		return 'K'
	case WhiteQueenside:
		return 'Q'
	case BlackKingside:
		return 'k'
	default:
		return 'q'
	}
}

// CastlingRights is the set of remaining castling options. Rights are
// only ever removed during a game, never re-added; they are tracked
// incrementally and never re-derived from the board.
type CastlingRights uint8

const (
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = CastlingRights(WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside)
)

// Has reports whether the set contains the right.
func (cr CastlingRights) Has(r CastlingRight) bool {
	return cr&CastlingRights(r) != 0
}

// Without returns the set with the given rights removed.
func (cr CastlingRights) Without(rights CastlingRights) CastlingRights {
	return cr &^ rights
}

// CanCastle reports whether the given side still holds the given right.
func (cr CastlingRights) CanCastle(c Color, kingside bool) bool {
	if c == White {
		if kingside {
			return cr.Has(WhiteKingside)
		}
		return cr.Has(WhiteQueenside)
	}
	if kingside {
		return cr.Has(BlackKingside)
	}
	return cr.Has(BlackQueenside)
}

// String returns the FEN castling field: some subset of "KQkq", or "-".
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := make([]byte, 0, 4)
	for _, r := range allRights {
		if cr.Has(r) {
			s = append(s, r.Char())
		}
	}
	return string(s)
}

// ParseCastlingRights parses the FEN castling field.
func ParseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	var cr CastlingRights
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			cr |= CastlingRights(WhiteKingside)
		case 'Q':
			cr |= CastlingRights(WhiteQueenside)
		case 'k':
			cr |= CastlingRights(BlackKingside)
		case 'q':
			cr |= CastlingRights(BlackQueenside)
		default:
			return NoCastling, fmt.Errorf("invalid castling character %q", s[i])
		}
	}
	return cr, nil
}

// rightsRevokedAt maps a square to the rights lost when a piece moves
// from it or is captured on it. Covers king moves, rook moves off a home
// square, and rook captures on a home square in one lookup.
var rightsRevokedAt = func() [64]CastlingRights {
	var t [64]CastlingRights
	t[E1] = CastlingRights(WhiteKingside | WhiteQueenside)
	t[E8] = CastlingRights(BlackKingside | BlackQueenside)
	t[H1] = CastlingRights(WhiteKingside)
	t[A1] = CastlingRights(WhiteQueenside)
	t[H8] = CastlingRights(BlackKingside)
	t[A8] = CastlingRights(BlackQueenside)
	return t
}()
