package sage

import "testing"

func TestBitboardBasics(t *testing.T) {
	var b Bitboard
	b = b.Set(E4).Set(A1).Set(H8)

	if got := b.PopCount(); got != 3 {
		t.Errorf("PopCount = %d, want 3", got)
	}
	if !b.IsSet(E4) || b.IsSet(E5) {
		t.Error("IsSet wrong after Set")
	}
	if got := b.LSB(); got != A1 {
		t.Errorf("LSB = %s, want a1", got)
	}
	if got := b.MSB(); got != H8 {
		t.Errorf("MSB = %s, want h8", got)
	}

	b = b.Clear(A1)
	if b.IsSet(A1) {
		t.Error("A1 still set after Clear")
	}

	if got := EmptyBB.LSB(); got != NoSquare {
		t.Errorf("LSB of empty = %v, want NoSquare", got)
	}
}

func TestBitboardPopLSB(t *testing.T) {
	b := SquareBB(C2) | SquareBB(G7) | SquareBB(A1)
	want := []Square{A1, C2, G7}
	for i, w := range want {
		if got := b.PopLSB(); got != w {
			t.Errorf("PopLSB #%d = %s, want %s", i, got, w)
		}
	}
	if !b.Empty() {
		t.Error("bitboard not empty after popping all bits")
	}
}

func TestBitboardShiftsRespectEdges(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want Bitboard
	}{
		{"north", SquareBB(E4).North(), SquareBB(E5)},
		{"south", SquareBB(E4).South(), SquareBB(E3)},
		{"east", SquareBB(H4).East(), EmptyBB},
		{"west", SquareBB(A4).West(), EmptyBB},
		{"northeast wrap", SquareBB(H4).NorthEast(), EmptyBB},
		{"northwest wrap", SquareBB(A4).NorthWest(), EmptyBB},
		{"southeast", SquareBB(E4).SouthEast(), SquareBB(F3)},
		{"southwest", SquareBB(E4).SouthWest(), SquareBB(D3)},
		{"north off board", SquareBB(E8).North(), EmptyBB},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %x, want %x", tc.name, uint64(tc.got), uint64(tc.want))
		}
	}
}

func TestBitboardMirror(t *testing.T) {
	if got := Rank2.Mirror(); got != Rank7 {
		t.Errorf("Rank2.Mirror = %x, want Rank7", uint64(got))
	}
	if got := SquareBB(C1).Mirror(); got != SquareBB(C8) {
		t.Errorf("c1 mirror = %x, want c8", uint64(got))
	}
}

func TestBitboardSquares(t *testing.T) {
	b := SquareBB(B2) | SquareBB(D4)
	got := b.Squares()
	if len(got) != 2 || got[0] != B2 || got[1] != D4 {
		t.Errorf("Squares = %v, want [b2 d4]", got)
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		parsed, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%s): %v", sq, err)
		}
		if parsed != sq {
			t.Errorf("round trip %s -> %s", sq, parsed)
		}
	}

	for _, bad := range []string{"", "e", "i4", "e9", "e44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q): expected error", bad)
		}
	}
}

func TestSquareGeometry(t *testing.T) {
	if E4.File() != 4 || E4.Rank() != 3 {
		t.Errorf("e4 file/rank = %d/%d", E4.File(), E4.Rank())
	}
	if got := E2.Mirror(); got != E7 {
		t.Errorf("e2 mirror = %s, want e7", got)
	}
	if got := E7.RelativeRank(Black); got != 1 {
		t.Errorf("e7 relative rank for black = %d, want 1", got)
	}
}
