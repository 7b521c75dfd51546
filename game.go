package sage

// halfmoveDrawClock is the fifty-move rule threshold in plies.
const halfmoveDrawClock = 100

// historyRecord stores the pre-move state a move needs for exact O(1)
// inversion: restored verbatim on undo, never recomputed.
type historyRecord struct {
	move      Move
	piece     Piece // the mover, pre-promotion identity
	captured  Piece // NoPiece if the move captured nothing
	checkers  Bitboard
	halfmoves int
	castling  CastlingRights
	enPassant Square
	hash      uint64
}

// Game is the stateful rules engine. It owns a board, the side to move,
// castling rights, the halfmove clock, and an append-only move history
// with an undo stack for redo. A Game is single-owner mutable state;
// callers serialize concurrent access or work on a Copy.
type Game struct {
	board     *Board
	turn      Color
	castling  CastlingRights
	halfmoves int
	fullmove  int
	startEP   Square   // en passant target seeded from FEN, root position only
	checkers  Bitboard // attackers to the current mover's king
	hash      uint64
	history   []historyRecord
	undone    []Move // undone moves, most recent last
}

// PromotionResolver supplies the piece a promoting pawn becomes. It is
// invoked only when the executed move actually promotes, so callers are
// not prompted for ordinary moves.
type PromotionResolver func(mover Color) Piece

// NewGame returns a game at the standard starting position.
func NewGame() *Game {
	g, _ := NewGameFromFEN(StartFEN)
	return g
}

// Board returns the game's board. Treat it as read-only; mutate the
// position through Execute and Undo.
func (g *Game) Board() *Board {
	return g.board
}

// Turn returns the side to move.
func (g *Game) Turn() Color {
	return g.turn
}

// CastlingRights returns the remaining castling rights.
func (g *Game) CastlingRights() CastlingRights {
	return g.castling
}

// HalfmoveClock returns the plies since the last capture or pawn move.
func (g *Game) HalfmoveClock() int {
	return g.halfmoves
}

// FullmoveNumber returns the FEN fullmove counter, starting at 1.
func (g *Game) FullmoveNumber() int {
	return g.fullmove
}

// Hash returns the Zobrist hash of the current position.
func (g *Game) Hash() uint64 {
	return g.hash
}

// Checkers returns the pieces currently giving check.
func (g *Game) Checkers() Bitboard {
	return g.checkers
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.checkers != 0
}

// InDoubleCheck reports whether two pieces give check at once; only king
// moves can resolve a double check.
func (g *Game) InDoubleCheck() bool {
	return g.checkers.PopCount() > 1
}

// History returns the moves played so far, oldest first.
func (g *Game) History() []Move {
	moves := make([]Move, len(g.history))
	for i, rec := range g.history {
		moves[i] = rec.move
	}
	return moves
}

// PlyCount returns the number of moves played.
func (g *Game) PlyCount() int {
	return len(g.history)
}

// EnPassantSquare returns the current en passant target square, or
// NoSquare. Eligibility is derived from the most recent move (a pawn
// double-step), not stored; a FEN-seeded target applies only while no
// move has been played.
func (g *Game) EnPassantSquare() Square {
	if len(g.history) == 0 {
		return g.startEP
	}
	rec := g.history[len(g.history)-1]
	if rec.piece.Type() == Pawn && abs(rec.move.RankChange()) == 2 {
		return Square((int(rec.move.From()) + int(rec.move.To())) / 2)
	}
	return NoSquare
}

// Copy returns a fully independent game: fresh board, fresh history, so
// speculative lookahead can diverge without touching the original.
func (g *Game) Copy() *Game {
	ng := *g
	ng.board = g.board.Copy()
	ng.history = append([]historyRecord(nil), g.history...)
	ng.undone = append([]Move(nil), g.undone...)
	return &ng
}

// LegalMoves returns every legal move for the side to move. Once the
// halfmove clock reaches the fifty-move threshold the draw is forced and
// no moves are offered.
func (g *Game) LegalMoves() []Move {
	if g.halfmoves >= halfmoveDrawClock {
		return nil
	}
	return g.legalMoves()
}

// LegalMovesFrom returns the legal moves originating at sq.
func (g *Game) LegalMovesFrom(sq Square) []Move {
	var moves []Move
	for _, m := range g.LegalMoves() {
		if m.From() == sq {
			moves = append(moves, m)
		}
	}
	return moves
}

// legalMoves generates legal moves ignoring the halfmove clock: pseudo-
// legal generation followed by the simulate-and-reject king-safety
// filter. The filter subsumes pin detection, discovered check, and
// en passant edge cases, trading speed for provable correctness.
func (g *Game) legalMoves() []Move {
	pseudo := g.pseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if g.isLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// isLegal executes the move on a scratch copy of the board and rejects
// it if the mover's own king would be attacked afterwards.
func (g *Game) isLegal(m Move) bool {
	us := g.turn
	sim := *g.board
	sim.applyUnchecked(m, us)
	return sim.attackersToKing(us) == 0
}

// pseudoLegalMoves generates moves obeying geometry and occupancy but
// not yet checked for king safety. In double check only king moves are
// generated, since no other move can resolve two simultaneous checks.
func (g *Game) pseudoLegalMoves() []Move {
	us := g.turn
	moves := make([]Move, 0, 64)

	if g.InDoubleCheck() {
		return g.appendKingMoves(moves, us)
	}

	occupied := g.board.all
	enemies := g.board.occupied[us.Other()]

	moves = g.appendPawnMoves(moves, us, enemies, occupied)

	knights := g.board.pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) &^ g.board.occupied[us]
		for attacks != 0 {
			moves = append(moves, NewMove(from, attacks.PopLSB()))
		}
	}

	bishops := g.board.pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) &^ g.board.occupied[us]
		for attacks != 0 {
			moves = append(moves, NewMove(from, attacks.PopLSB()))
		}
	}

	rooks := g.board.pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) &^ g.board.occupied[us]
		for attacks != 0 {
			moves = append(moves, NewMove(from, attacks.PopLSB()))
		}
	}

	queens := g.board.pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) &^ g.board.occupied[us]
		for attacks != 0 {
			moves = append(moves, NewMove(from, attacks.PopLSB()))
		}
	}

	moves = g.appendKingMoves(moves, us)
	moves = g.appendCastlingMoves(moves, us)
	return moves
}

func (g *Game) appendKingMoves(moves []Move, us Color) []Move {
	kingBB := g.board.pieces[us][King]
	if kingBB == 0 {
		return moves
	}
	from := kingBB.LSB()
	attacks := KingAttacks(from) &^ g.board.occupied[us]
	for attacks != 0 {
		moves = append(moves, NewMove(from, attacks.PopLSB()))
	}
	return moves
}

// appendCastlingMoves adds castle moves for each right the side still
// holds whose between-squares are empty and whose king path (start,
// transit, destination) is unattacked. A king in check therefore cannot
// castle, and a king cannot castle through an attacked square.
func (g *Game) appendCastlingMoves(moves []Move, us Color) []Move {
	them := us.Other()
	for _, right := range allRights {
		if right.Color() != us || !g.castling.Has(right) {
			continue
		}
		if g.board.KingSquare(us) != right.KingStart() {
			continue
		}
		if g.board.all&right.EmptySquares() != 0 {
			continue
		}
		safe := true
		for _, sq := range right.KingPath() {
			if g.board.IsAttacked(sq, them) {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, NewCastling(right.KingStart(), right.KingDestination()))
		}
	}
	return moves
}

// appendPawnMoves generates pushes, double pushes, captures, promotions,
// and en passant captures set-wise over the pawn bitboard. Push and
// attack geometries differ, so they are unioned separately.
func (g *Game) appendPawnMoves(moves []Move, us Color, enemies, occupied Bitboard) []Move {
	pawns := g.board.pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR, promoRank Bitboard
	var pushDir int
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promoRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promoRank = Rank1
		pushDir = -8
	}

	for bb := push1 &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		moves = append(moves, NewMove(Square(int(to)-pushDir), to))
	}
	for bb := push2; bb != 0; {
		to := bb.PopLSB()
		moves = append(moves, NewMove(Square(int(to)-2*pushDir), to))
	}
	for bb := attackL &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		moves = append(moves, NewMove(Square(int(to)-pushDir+1), to))
	}
	for bb := attackR &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		moves = append(moves, NewMove(Square(int(to)-pushDir-1), to))
	}

	for bb := push1 & promoRank; bb != 0; {
		to := bb.PopLSB()
		moves = appendPromotions(moves, Square(int(to)-pushDir), to)
	}
	for bb := attackL & promoRank; bb != 0; {
		to := bb.PopLSB()
		moves = appendPromotions(moves, Square(int(to)-pushDir+1), to)
	}
	for bb := attackR & promoRank; bb != 0; {
		to := bb.PopLSB()
		moves = appendPromotions(moves, Square(int(to)-pushDir-1), to)
	}

	if ep := g.EnPassantSquare(); ep != NoSquare {
		epBB := SquareBB(ep)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			moves = append(moves, NewEnPassant(epAttackers.PopLSB(), ep))
		}
	}
	return moves
}

func appendPromotions(moves []Move, from, to Square) []Move {
	return append(moves,
		NewPromotion(from, to, Queen),
		NewPromotion(from, to, Rook),
		NewPromotion(from, to, Bishop),
		NewPromotion(from, to, Knight))
}

// Execute plays a move. Promotion moves either carry their promotion
// piece (NewPromotion) or default to a queen.
func (g *Game) Execute(m Move) error {
	return g.ExecuteWith(m, nil)
}

// ExecuteWith plays a move, consulting resolve for the promotion piece
// if and only if the move promotes. The move must be in the legal set
// for the side to move; otherwise an IllegalMoveError is returned and
// the position is untouched. A resolver answer of the wrong color, a
// pawn, or a king yields an InvalidPromotionError.
func (g *Game) ExecuteWith(m Move, resolve PromotionResolver) error {
	matched, err := g.matchLegal(m, resolve)
	if err != nil {
		return err
	}
	g.apply(matched)
	g.undone = g.undone[:0] // a new move collapses any undone branch
	return nil
}

// matchLegal resolves m against the current legal move set. A plain
// (from, to) move acquires the flags of the matching legal move, so
// callers need not classify castling or en passant themselves.
func (g *Game) matchLegal(m Move, resolve PromotionResolver) (Move, error) {
	for _, legal := range g.LegalMoves() {
		if legal.From() != m.From() || legal.To() != m.To() {
			continue
		}
		if legal.IsPromotion() {
			promo := m.Promotion()
			if !m.IsPromotion() {
				promo = Queen
				if resolve != nil {
					piece := resolve(g.turn)
					if piece.Color() != g.turn || piece.Type() == Pawn || piece.Type() >= King {
						return NoMove, &InvalidPromotionError{Piece: piece}
					}
					promo = piece.Type()
				}
			}
			return NewPromotion(m.From(), m.To(), promo), nil
		}
		if m.IsPromotion() {
			continue // promotion requested where none is possible
		}
		return legal, nil
	}
	return NoMove, &IllegalMoveError{Move: m, Color: g.turn, Board: g.board.FEN()}
}

// apply executes a verified-legal move, maintaining the hash
// incrementally and appending the reversible history record.
func (g *Game) apply(m Move) {
	us := g.turn
	them := us.Other()
	from, to := m.From(), m.To()
	piece := g.board.PieceAt(from)

	rec := historyRecord{
		move:      m,
		piece:     piece,
		captured:  NoPiece,
		checkers:  g.checkers,
		halfmoves: g.halfmoves,
		castling:  g.castling,
		enPassant: g.EnPassantSquare(),
		hash:      g.hash,
	}

	g.hash ^= zobristSideToMove
	g.hash ^= zobristCastling[g.castling]
	if rec.enPassant != NoSquare {
		g.hash ^= zobristEnPassant[rec.enPassant.File()]
	}

	if m.IsEnPassant() {
		// The captured pawn sits beside the destination, not on it.
		capSq := epCaptureSquare(to, us)
		rec.captured = g.board.Remove(capSq)
		g.hash ^= zobristPiece[them][Pawn][capSq]
	} else if captured := g.board.Remove(to); captured != NoPiece {
		rec.captured = captured
		g.hash ^= zobristPiece[them][captured.Type()][to]
	}

	g.board.Move(from, to)
	g.hash ^= zobristPiece[us][piece.Type()][from]
	g.hash ^= zobristPiece[us][piece.Type()][to]

	if m.IsPromotion() {
		g.board.Remove(to)
		g.board.Place(NewPiece(m.Promotion(), us), to)
		g.hash ^= zobristPiece[us][Pawn][to]
		g.hash ^= zobristPiece[us][m.Promotion()][to]
	}

	if m.IsCastling() {
		right := castlingRightFor(us, to > from)
		g.board.Move(right.RookStart(), right.RookDestination())
		g.hash ^= zobristPiece[us][Rook][right.RookStart()]
		g.hash ^= zobristPiece[us][Rook][right.RookDestination()]
	}

	g.castling = g.castling.Without(rightsRevokedAt[from] | rightsRevokedAt[to])
	g.hash ^= zobristCastling[g.castling]

	if piece.Type() == Pawn && abs(m.RankChange()) == 2 {
		g.hash ^= zobristEnPassant[to.File()]
	}

	if piece.Type() == Pawn || rec.captured != NoPiece {
		g.halfmoves = 0
	} else {
		g.halfmoves++
	}
	if us == Black {
		g.fullmove++
	}
	g.turn = them
	g.checkers = g.board.attackersToKing(them)
	g.history = append(g.history, rec)
}

// Undo takes back the most recent move, reversing its side effects and
// restoring the recorded pre-move state verbatim. The move becomes
// available to Redo. Returns false if no move has been played.
func (g *Game) Undo() (Move, bool) {
	n := len(g.history)
	if n == 0 {
		return NoMove, false
	}
	rec := g.history[n-1]
	g.history = g.history[:n-1]

	us := g.turn.Other() // the mover
	m := rec.move
	from, to := m.From(), m.To()

	if m.IsPromotion() {
		// The promoted piece vanishes; the pawn identity returns.
		g.board.Remove(to)
		g.board.Place(NewPiece(Pawn, us), from)
	} else {
		g.board.Move(to, from)
	}
	if m.IsCastling() {
		right := castlingRightFor(us, to > from)
		g.board.Move(right.RookDestination(), right.RookStart())
	}
	if rec.captured != NoPiece {
		capSq := to
		if m.IsEnPassant() {
			capSq = epCaptureSquare(to, us)
		}
		g.board.Place(rec.captured, capSq)
	}

	g.castling = rec.castling
	g.halfmoves = rec.halfmoves
	g.checkers = rec.checkers
	g.hash = rec.hash
	if us == Black {
		g.fullmove--
	}
	g.turn = us
	g.undone = append(g.undone, m)
	return m, true
}

// Redo replays the most recently undone move, including its recorded
// promotion. Returns false if there is nothing to redo.
func (g *Game) Redo() (Move, bool) {
	n := len(g.undone)
	if n == 0 {
		return NoMove, false
	}
	m := g.undone[n-1]
	g.undone = g.undone[:n-1]
	g.apply(m)
	return m, true
}

// UndoAll takes back every move, returning the game to its starting
// position.
func (g *Game) UndoAll() {
	for len(g.history) > 0 {
		g.Undo()
	}
}

// StartingFEN returns the FEN of the position the game began from.
func (g *Game) StartingFEN() string {
	root := g.Copy()
	root.UndoAll()
	return root.FEN()
}

// Outcome returns the game's result: a win for the opponent when the
// side to move is checkmated, a draw on stalemate or once the halfmove
// clock reaches 100 plies, and NoOutcome for a game still in progress.
func (g *Game) Outcome() Outcome {
	if len(g.legalMoves()) == 0 {
		if g.InCheck() {
			return winFor(g.turn.Other())
		}
		return Draw
	}
	if g.halfmoves >= halfmoveDrawClock {
		return Draw
	}
	return NoOutcome
}

// IsCheckmate reports whether the side to move is checkmated.
func (g *Game) IsCheckmate() bool {
	return g.InCheck() && len(g.legalMoves()) == 0
}

// IsStalemate reports whether the side to move is stalemated.
func (g *Game) IsStalemate() bool {
	return !g.InCheck() && len(g.legalMoves()) == 0
}

// ThreefoldRepetition reports whether the current position has occurred
// at least three times in the game. It is a predicate for the caller to
// consult, not an Outcome case.
func (g *Game) ThreefoldRepetition() bool {
	count := 1
	for _, rec := range g.history {
		if rec.hash == g.hash {
			count++
		}
	}
	return count >= 3
}

// InsufficientMaterial reports whether neither side retains mating
// material (bare kings, or king and one minor piece versus king).
func (g *Game) InsufficientMaterial() bool {
	b := g.board
	if b.pieces[White][Pawn]|b.pieces[Black][Pawn] != 0 ||
		b.pieces[White][Rook]|b.pieces[Black][Rook] != 0 ||
		b.pieces[White][Queen]|b.pieces[Black][Queen] != 0 {
		return false
	}
	wMinor := b.Count(Knight, White) + b.Count(Bishop, White)
	bMinor := b.Count(Knight, Black) + b.Count(Bishop, Black)
	return (wMinor <= 1 && bMinor == 0) || (bMinor <= 1 && wMinor == 0)
}

// applyUnchecked applies a move's board effects without validation or
// state bookkeeping. Used on scratch board copies by the king-safety
// filter.
func (b *Board) applyUnchecked(m Move, us Color) {
	from, to := m.From(), m.To()
	if m.IsEnPassant() {
		b.Remove(epCaptureSquare(to, us))
	}
	b.Remove(to)
	b.Move(from, to)
	if m.IsPromotion() {
		b.Remove(to)
		b.Place(NewPiece(m.Promotion(), us), to)
	}
	if m.IsCastling() {
		right := castlingRightFor(us, to > from)
		b.Move(right.RookStart(), right.RookDestination())
	}
}

// epCaptureSquare returns the square of the pawn captured en passant:
// one rank behind the destination from the mover's point of view.
func epCaptureSquare(to Square, us Color) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// castlingRightFor returns the right matching a castle move's side and
// direction.
func castlingRightFor(c Color, kingside bool) CastlingRight {
	if c == White {
		if kingside {
			return WhiteKingside
		}
		return WhiteQueenside
	}
	if kingside {
		return BlackKingside
	}
	return BlackQueenside
}
