package sage

// Zobrist keys for position hashing, seeded deterministically so hashes
// are stable across runs. Game maintains the hash incrementally and uses
// it for threefold-repetition detection.
var (
	zobristPiece      [2][6][64]uint64
	zobristEnPassant  [8]uint64 // one key per file
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// xorshift64* with a fixed seed.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := prng{state: 0x5AE6_0C17_93B4_D2E8}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// hashPosition computes a position hash from scratch. Used when a game is
// created; Execute and Undo keep it current incrementally.
func hashPosition(b *Board, turn Color, cr CastlingRights, ep Square) uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := b.pieces[c][pt]
			for bb != 0 {
				hash ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	if turn == Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[cr]
	if ep != NoSquare {
		hash ^= zobristEnPassant[ep.File()]
	}
	return hash
}
