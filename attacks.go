package sage

// Precomputed attack tables. Built once in init and read-only afterwards,
// so concurrent readers need no synchronization.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square], occupancy-independent
	pawnPushes    [2][64]Bitboard // [Color][Square], single-push targets

	betweenBB [64][64]Bitboard // squares strictly between two aligned squares
	lineBB    [64][64]Bitboard // full line through two aligned squares
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initBetweenBB()
	initLineBB()
	initMagics() // from magic.go
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		attacks := EmptyBB
		attacks |= (bb << 17) & NotFileA  // NNE
		attacks |= (bb << 15) & NotFileH  // NNW
		attacks |= (bb >> 17) & NotFileH  // SSW
		attacks |= (bb >> 15) & NotFileA  // SSE
		attacks |= (bb << 10) & NotFileAB // ENE
		attacks |= (bb << 6) & NotFileGH  // WNW
		attacks |= (bb >> 10) & NotFileGH // WSW
		attacks |= (bb >> 6) & NotFileAB  // ESE
		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		attacks := bb.North() | bb.South() | bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()
		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
		pawnPushes[White][sq] = bb.North()
		pawnPushes[Black][sq] = bb.South()
	}
}

func initBetweenBB() {
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()
			df := sign(f2 - f1)
			dr := sign(r2 - r1)
			if df == 0 && dr == 0 {
				continue
			}
			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue // not on a diagonal
			}

			var between Bitboard
			f, r := f1+df, r1+dr
			for f != f2 || r != r2 {
				between |= SquareBB(NewSquare(f, r))
				f += df
				r += dr
			}
			betweenBB[sq1][sq2] = between
		}
	}
}

func initLineBB() {
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()
			df := sign(f2 - f1)
			dr := sign(r2 - r1)
			if df == 0 && dr == 0 {
				continue
			}
			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue
			}

			var line Bitboard
			f, r := f1, r1
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= SquareBB(NewSquare(f, r))
				f -= df
				r -= dr
			}
			f, r = f1+df, r1+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= SquareBB(NewSquare(f, r))
				f += df
				r += dr
			}
			lineBB[sq1][sq2] = line
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the diagonal capture squares of a pawn of color c.
// Attack squares are independent of occupancy.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// PawnPushes returns the single-push target of a pawn of color c. Pushes
// require the destination to be empty; the caller gates on occupancy.
func PawnPushes(sq Square, c Color) Bitboard {
	return pawnPushes[c][sq]
}

// BishopAttacks returns bishop attacks from sq given blocker occupancy,
// including the first blocker on each ray and nothing beyond it.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return lookupBishopAttacks(sq, occupied)
}

// RookAttacks returns rook attacks from sq given blocker occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return lookupRookAttacks(sq, occupied)
}

// QueenAttacks returns queen attacks from sq given blocker occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// SlidingAttacks returns attacks for a sliding piece type; it is the
// table-driven form of ray extension stopping at the first blocker.
func SlidingAttacks(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	default:
		return EmptyBB
	}
}

// Between returns the squares strictly between two squares, or empty if
// they are not aligned on a rank, file, or diagonal.
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// Line returns the full board line through two squares (endpoints
// included), or empty if they are not aligned.
func Line(sq1, sq2 Square) Bitboard {
	return lineBB[sq1][sq2]
}

// Aligned reports whether sq3 lies on the line through sq1 and sq2.
func Aligned(sq1, sq2, sq3 Square) bool {
	return lineBB[sq1][sq2]&SquareBB(sq3) != 0
}
