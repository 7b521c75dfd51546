package sage

import "fmt"

// IllegalMoveError reports a move that is not in the legal set for the
// position it was attempted in. Board is the FEN board field at the time
// of the attempt.
type IllegalMoveError struct {
	Move  Move
	Color Color
	Board string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s for %s in %s", e.Move, e.Color, e.Board)
}

// InvalidPromotionError reports a promotion resolver that supplied a
// piece of the wrong color or an un-promotable kind (pawn or king).
type InvalidPromotionError struct {
	Piece Piece
}

func (e *InvalidPromotionError) Error() string {
	return fmt.Sprintf("invalid promotion piece %s %s", e.Piece.Color(), e.Piece.Type())
}
