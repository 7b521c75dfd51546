package sage

import (
	"errors"
	"testing"
)

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	return g
}

func playSAN(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, san := range moves {
		m, err := g.ParseSAN(san)
		if err != nil {
			t.Fatalf("ParseSAN(%q) at %q: %v", san, g.FEN(), err)
		}
		if err := g.Execute(m); err != nil {
			t.Fatalf("Execute(%s): %v", san, err)
		}
	}
}

func TestNewGameStartPosition(t *testing.T) {
	g := NewGame()
	if got := g.FEN(); got != StartFEN {
		t.Errorf("FEN() = %q, want %q", got, StartFEN)
	}
	if g.Turn() != White {
		t.Error("white moves first")
	}
	if g.InCheck() {
		t.Error("starting position is not check")
	}
	if n := len(g.LegalMoves()); n != 20 {
		t.Errorf("starting position has %d legal moves, want 20", n)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/4Pp2/8/8/4K3 b - e3 0 1",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 12 40",
	}
	for _, fen := range fens {
		g := mustGame(t, fen)
		if got := g.FEN(); got != fen {
			t.Errorf("round trip %q -> %q", fen, got)
		}
	}
}

func TestFENErrors(t *testing.T) {
	fens := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq",        // 3 fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",  // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",  // bad rights
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // bad ep square
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", // bad clock
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",  // bad fullmove
	}
	for _, fen := range fens {
		if _, err := NewGameFromFEN(fen); err == nil {
			t.Errorf("NewGameFromFEN(%q): expected error", fen)
		}
	}
}

// Every generated move must leave the mover's king out of check after it
// is played.
func TestLegalMovesLeaveKingSafe(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}
	for _, fen := range fens {
		g := mustGame(t, fen)
		us := g.Turn()
		for _, m := range g.LegalMoves() {
			sim := g.Copy()
			sim.apply(m)
			if sim.board.attackersToKing(us) != 0 {
				t.Errorf("%q: move %s leaves own king attacked", fen, m)
			}
		}
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Knight on f6 and rook on e1 both check the e8 king.
	g := mustGame(t, "3qk3/8/5N2/8/8/8/8/4R1K1 b - - 0 1")
	if !g.InDoubleCheck() {
		t.Fatal("expected double check")
	}
	moves := g.LegalMoves()
	if len(moves) == 0 {
		t.Fatal("king must have an escape here")
	}
	ksq := g.Board().KingSquare(Black)
	for _, m := range moves {
		if m.From() != ksq {
			t.Errorf("non-king move %s offered in double check", m)
		}
	}
}

func TestCastling(t *testing.T) {
	g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	var kingside, queenside bool
	for _, m := range g.LegalMoves() {
		if m.IsCastling() {
			if m.To() == G1 {
				kingside = true
			}
			if m.To() == C1 {
				queenside = true
			}
		}
	}
	if !kingside || !queenside {
		t.Fatalf("both castles should be legal, got kingside=%v queenside=%v", kingside, queenside)
	}

	playSAN(t, g, "O-O")
	if g.Board().PieceAt(G1) != WhiteKing || g.Board().PieceAt(F1) != WhiteRook {
		t.Errorf("after O-O: %s", g.FEN())
	}
	if got := g.CastlingRights().String(); got != "kq" {
		t.Errorf("rights after white O-O = %q, want kq", got)
	}

	playSAN(t, g, "O-O-O")
	if g.Board().PieceAt(C8) != BlackKing || g.Board().PieceAt(D8) != BlackRook {
		t.Errorf("after O-O-O: %s", g.FEN())
	}
	if got := g.CastlingRights().String(); got != "-" {
		t.Errorf("rights after black O-O-O = %q, want -", got)
	}
}

func TestCastlingDeniedInCheck(t *testing.T) {
	// Rook on e3 checks the king; castling is not an escape.
	g := mustGame(t, "4k3/8/8/8/8/4r3/8/4K2R w K - 0 1")
	if !g.InCheck() {
		t.Fatal("expected check")
	}
	for _, m := range g.LegalMoves() {
		if m.IsCastling() {
			t.Errorf("castle %s offered while in check", m)
		}
	}
}

func TestCastlingDeniedThroughAttack(t *testing.T) {
	// Rook on f3 covers f1, the king's transit square.
	g := mustGame(t, "4k3/8/8/8/8/5r2/8/4K2R w K - 0 1")
	if g.InCheck() {
		t.Fatal("position should not be check")
	}
	for _, m := range g.LegalMoves() {
		if m.IsCastling() {
			t.Errorf("castle %s offered through an attacked square", m)
		}
	}
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	playSAN(t, g, "Rxa8")
	if got := g.CastlingRights().String(); got != "Kk" {
		t.Errorf("rights after Rxa8 = %q, want Kk", got)
	}

	g = mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	playSAN(t, g, "Rxh1")
	if got := g.CastlingRights().String(); got != "Qq" {
		t.Errorf("rights after Rxh1 = %q, want Qq", got)
	}
}

func TestEnPassant(t *testing.T) {
	g := NewGame()
	playSAN(t, g, "c4", "c6", "c5", "d5")

	if got := g.EnPassantSquare(); got != D6 {
		t.Fatalf("en passant square = %v, want d6", got)
	}

	playSAN(t, g, "cxd6")
	if g.Board().PieceAt(D6) != WhitePawn {
		t.Error("capturing pawn should land on d6")
	}
	if g.Board().PieceAt(D5) != NoPiece {
		t.Error("en passant must remove the d5 pawn")
	}
	if got := g.EnPassantSquare(); got != NoSquare {
		t.Errorf("en passant square after capture = %v, want none", got)
	}
}

func TestEnPassantEligibilityExpires(t *testing.T) {
	g := NewGame()
	playSAN(t, g, "e4", "Nf6")
	if got := g.EnPassantSquare(); got != NoSquare {
		t.Errorf("en passant square two plies after the double step = %v, want none", got)
	}
}

func TestEnPassantFromFEN(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/4Pp2/8/8/4K3 b - e3 0 1")
	if got := g.EnPassantSquare(); got != E3 {
		t.Fatalf("en passant square = %v, want e3", got)
	}
	found := false
	for _, m := range g.LegalMoves() {
		if m.IsEnPassant() && m.From() == F4 && m.To() == E3 {
			found = true
		}
	}
	if !found {
		t.Error("fxe3 en passant should be legal")
	}
}

// A pawn apparently able to capture en passant may still be forbidden to
// when both pawns shield the king from a rook along the rank.
func TestEnPassantPinnedOnRank(t *testing.T) {
	g := mustGame(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	for _, m := range g.LegalMoves() {
		if m.IsEnPassant() {
			t.Errorf("en passant %s exposes the king along the fourth rank", m)
		}
	}
	if n := len(g.LegalMoves()); n != 6 {
		t.Errorf("position has %d legal moves, want 6", n)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	g := mustGame(t, "7k/8/8/8/8/8/8/R6K w - - 100 80")
	if moves := g.LegalMoves(); moves != nil {
		t.Errorf("no moves may be offered at clock 100, got %d", len(moves))
	}
	if got := g.Outcome(); got != Draw {
		t.Errorf("Outcome() = %v, want draw", got)
	}

	g = mustGame(t, "7k/8/8/8/8/8/8/R6K w - - 99 80")
	if len(g.LegalMoves()) == 0 {
		t.Error("moves must still be offered at clock 99")
	}
	if got := g.Outcome(); got != NoOutcome {
		t.Errorf("Outcome() at clock 99 = %v, want in progress", got)
	}
}

func TestHalfmoveClock(t *testing.T) {
	g := NewGame()
	playSAN(t, g, "Nf3", "Nf6")
	if got := g.HalfmoveClock(); got != 2 {
		t.Errorf("clock after two knight moves = %d, want 2", got)
	}
	playSAN(t, g, "e4")
	if got := g.HalfmoveClock(); got != 0 {
		t.Errorf("clock after a pawn move = %d, want 0", got)
	}
}

func TestUndoRedo(t *testing.T) {
	g := NewGame()
	var fens []string
	var hashes []uint64

	moves := []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6"}
	for _, san := range moves {
		fens = append(fens, g.FEN())
		hashes = append(hashes, g.Hash())
		playSAN(t, g, san)
	}
	finalFEN := g.FEN()
	finalHash := g.Hash()

	for i := len(moves) - 1; i >= 0; i-- {
		if _, ok := g.Undo(); !ok {
			t.Fatalf("Undo failed at ply %d", i)
		}
		if got := g.FEN(); got != fens[i] {
			t.Fatalf("undo to ply %d: FEN %q, want %q", i, got, fens[i])
		}
		if got := g.Hash(); got != hashes[i] {
			t.Fatalf("undo to ply %d: hash mismatch", i)
		}
	}
	if _, ok := g.Undo(); ok {
		t.Error("Undo at the starting position should report false")
	}

	for range moves {
		if _, ok := g.Redo(); !ok {
			t.Fatal("Redo failed")
		}
	}
	if got := g.FEN(); got != finalFEN {
		t.Errorf("after redo all: FEN %q, want %q", got, finalFEN)
	}
	if got := g.Hash(); got != finalHash {
		t.Error("after redo all: hash mismatch")
	}
	if _, ok := g.Redo(); ok {
		t.Error("Redo with nothing undone should report false")
	}
}

func TestExecuteCollapsesRedoBranch(t *testing.T) {
	g := NewGame()
	playSAN(t, g, "e4")
	g.Undo()
	playSAN(t, g, "d4")
	if _, ok := g.Redo(); ok {
		t.Error("a new move must discard the undone branch")
	}
}

func TestStartingFEN(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	g := mustGame(t, fen)
	playSAN(t, g, "O-O", "O-O-O")
	if got := g.StartingFEN(); got != fen {
		t.Errorf("StartingFEN() = %q, want %q", got, fen)
	}
	if g.PlyCount() != 2 {
		t.Error("StartingFEN must not disturb the live game")
	}
}

func TestUndoRestoresPromotion(t *testing.T) {
	g := mustGame(t, "8/P6k/8/8/8/8/8/7K w - - 0 1")
	before := g.FEN()
	playSAN(t, g, "a8=R")
	if g.Board().PieceAt(A8) != WhiteRook {
		t.Fatalf("expected rook on a8: %s", g.FEN())
	}
	g.Undo()
	if got := g.FEN(); got != before {
		t.Errorf("undo of promotion: FEN %q, want %q", got, before)
	}
	if g.Board().PieceAt(A7) != WhitePawn {
		t.Error("undo must restore the pawn")
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	g := mustGame(t, "8/P6k/8/8/8/8/8/7K w - - 0 1")
	if err := g.Execute(NewMove(A7, A8)); err != nil {
		t.Fatal(err)
	}
	if got := g.Board().PieceAt(A8); got != WhiteQueen {
		t.Errorf("piece on a8 = %v, want white queen", got)
	}
}

func TestPromotionResolver(t *testing.T) {
	g := mustGame(t, "8/P6k/8/8/8/8/8/7K w - - 0 1")
	askedFor := NoColor
	err := g.ExecuteWith(NewMove(A7, A8), func(mover Color) Piece {
		askedFor = mover
		return WhiteKnight
	})
	if err != nil {
		t.Fatal(err)
	}
	if askedFor != White {
		t.Errorf("resolver asked for color %v, want white", askedFor)
	}
	if got := g.Board().PieceAt(A8); got != WhiteKnight {
		t.Errorf("piece on a8 = %v, want white knight", got)
	}
}

func TestPromotionResolverNotCalledForOrdinaryMove(t *testing.T) {
	g := NewGame()
	called := false
	err := g.ExecuteWith(NewMove(E2, E4), func(Color) Piece {
		called = true
		return WhiteQueen
	})
	if err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("resolver must only be consulted for promotions")
	}
}

func TestInvalidPromotion(t *testing.T) {
	for _, bad := range []Piece{BlackQueen, WhitePawn, WhiteKing} {
		g := mustGame(t, "8/P6k/8/8/8/8/8/7K w - - 0 1")
		err := g.ExecuteWith(NewMove(A7, A8), func(Color) Piece { return bad })
		var perr *InvalidPromotionError
		if !errors.As(err, &perr) {
			t.Fatalf("resolver answer %v: error = %v, want InvalidPromotionError", bad, err)
		}
		if perr.Piece != bad {
			t.Errorf("error carries piece %v, want %v", perr.Piece, bad)
		}
		if g.Board().PieceAt(A7) != WhitePawn {
			t.Error("failed promotion must leave the position untouched")
		}
	}
}

func TestIllegalMove(t *testing.T) {
	g := NewGame()
	err := g.Execute(NewMove(E2, E5))
	var merr *IllegalMoveError
	if !errors.As(err, &merr) {
		t.Fatalf("error = %v, want IllegalMoveError", err)
	}
	if merr.Move != NewMove(E2, E5) || merr.Color != White {
		t.Errorf("error fields = %+v", merr)
	}
	if merr.Board == "" {
		t.Error("error should carry the board position")
	}
	if got := g.FEN(); got != StartFEN {
		t.Errorf("rejected move must leave the position untouched: %q", got)
	}
}

func TestImmortalGame(t *testing.T) {
	moves := []string{
		"e4", "e5", "f4", "exf4", "Bc4", "Qh4+", "Kf1", "b5",
		"Bxb5", "Nf6", "Nf3", "Qh6", "d3", "Nh5", "Nh4", "Qg5",
		"Nf5", "c6", "g4", "Nf6", "Rg1", "cxb5", "h4", "Qg6",
		"h5", "Qg5", "Qf3", "Ng8", "Bxf4", "Qf6", "Nc3", "Bc5",
		"Nd5", "Qxb2", "Bd6", "Bxg1", "e5", "Qxa1+", "Ke2", "Na6",
		"Nxg7+", "Kd8", "Qf6+", "Nxf6", "Be7#",
	}
	g := NewGame()
	playSAN(t, g, moves...)

	if g.PlyCount() != len(moves) {
		t.Errorf("PlyCount() = %d, want %d", g.PlyCount(), len(moves))
	}
	if !g.IsCheckmate() {
		t.Fatalf("final position should be checkmate: %s", g.FEN())
	}
	if got := g.Outcome(); got != WhiteWin {
		t.Errorf("Outcome() = %v, want 1-0", got)
	}
	if got := g.Outcome().Winner(); got != White {
		t.Errorf("Winner() = %v, want white", got)
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	playSAN(t, g, "f3", "e5", "g4", "Qh4#")
	if !g.IsCheckmate() {
		t.Fatal("expected checkmate")
	}
	if got := g.Outcome(); got != BlackWin {
		t.Errorf("Outcome() = %v, want 0-1", got)
	}
}

func TestStalemate(t *testing.T) {
	g := mustGame(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !g.IsStalemate() {
		t.Fatalf("expected stalemate: %s", g.FEN())
	}
	if g.IsCheckmate() {
		t.Error("stalemate is not checkmate")
	}
	if got := g.Outcome(); got != Draw {
		t.Errorf("Outcome() = %v, want draw", got)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := NewGame()
	playSAN(t, g, "Nf3", "Nf6", "Ng1", "Ng8")
	if g.ThreefoldRepetition() {
		t.Error("two occurrences are not yet a threefold repetition")
	}
	playSAN(t, g, "Nf3", "Nf6", "Ng1", "Ng8")
	if !g.ThreefoldRepetition() {
		t.Error("starting position has now occurred three times")
	}
	if got := g.Outcome(); got != NoOutcome {
		t.Errorf("repetition is a claimable draw, not an outcome: got %v", got)
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},         // bare kings
		{"8/8/8/4k3/8/8/8/3NK3 w - - 0 1", true},        // knight vs king
		{"8/8/8/2b1k3/8/8/8/4K3 w - - 0 1", true},       // bishop vs king
		{"8/8/8/4k3/8/8/8/2N1KN2 w - - 0 1", false},     // two knights
		{"8/8/8/2n1k3/8/8/8/3NK3 w - - 0 1", false},     // minor each side
		{"8/8/8/4k3/8/8/8/3RK3 w - - 0 1", false},       // rook
		{"8/8/8/4k3/8/7P/8/4K3 w - - 0 1", false},       // pawn
		{StartFEN, false},
	}
	for _, tt := range tests {
		g := mustGame(t, tt.fen)
		if got := g.InsufficientMaterial(); got != tt.want {
			t.Errorf("InsufficientMaterial(%q) = %v, want %v", tt.fen, got, tt.want)
		}
	}
}

func TestCopyIndependence(t *testing.T) {
	g := NewGame()
	playSAN(t, g, "e4")
	sibling := g.Copy()
	playSAN(t, sibling, "e5", "Nf3")

	if g.PlyCount() != 1 {
		t.Errorf("original PlyCount() = %d, want 1", g.PlyCount())
	}
	if sibling.PlyCount() != 3 {
		t.Errorf("copy PlyCount() = %d, want 3", sibling.PlyCount())
	}
	if g.FEN() == sibling.FEN() {
		t.Error("copy diverged but positions match")
	}
}

func TestHashConsistency(t *testing.T) {
	g := NewGame()
	playSAN(t, g, "e4", "e5", "Nf3", "Nc6", "Bb5")

	reparsed := mustGame(t, g.FEN())
	if reparsed.Hash() != g.Hash() {
		t.Error("incremental hash disagrees with from-scratch hash")
	}
}

func TestLegalMovesFrom(t *testing.T) {
	g := NewGame()
	moves := g.LegalMovesFrom(G1)
	if len(moves) != 2 {
		t.Fatalf("knight on g1 has %d moves, want 2", len(moves))
	}
	for _, m := range moves {
		if m.From() != G1 {
			t.Errorf("move %s does not start at g1", m)
		}
	}
	if moves := g.LegalMovesFrom(D4); moves != nil {
		t.Errorf("empty square offered %d moves", len(moves))
	}
}
