package sage

import "testing"

// perft counts the leaf nodes of the legal move tree to the given depth.
// The tallies below are the community-standard values; any generator bug
// in castling, en passant, promotion, or pin handling shifts them.
func perft(g *Game, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := g.legalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		g.apply(m)
		nodes += perft(g, depth-1)
		g.Undo()
	}
	return nodes
}

func runPerft(t *testing.T, fen string, want []uint64) {
	t.Helper()
	g := mustGame(t, fen)
	for depth, expected := range want {
		if got := perft(g, depth+1); got != expected {
			t.Errorf("perft(%d) of %q = %d, want %d", depth+1, fen, got, expected)
		}
	}
}

func TestPerftStartPosition(t *testing.T) {
	runPerft(t, StartFEN, []uint64{20, 400, 8902, 197281})
}

func TestPerftKiwipete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	runPerft(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		[]uint64{48, 2039, 97862})
}

func TestPerftEndgame(t *testing.T) {
	runPerft(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		[]uint64{14, 191, 2812, 43238})
}

func TestPerftEnPassantPin(t *testing.T) {
	runPerft(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", []uint64{6})
}

func TestPerftPromotions(t *testing.T) {
	runPerft(t, "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		[]uint64{24, 496, 9483})
}
