package sage

import (
	"fmt"
	"math/bits"
)

// Bitboard is a 64-bit set of squares, one bit per square in the same
// Little-Endian Rank-File Mapping as Square: bit 0 = A1, bit 63 = H8.
// Every uint64 value is a valid Bitboard; there are no error states.
type Bitboard uint64

// File masks.
const (
	FileA Bitboard = 0x0101010101010101 << iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank masks.
const (
	Rank1 Bitboard = 0xFF << (8 * iota)
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	EmptyBB    Bitboard = 0
	UniverseBB Bitboard = 0xFFFFFFFFFFFFFFFF

	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileB)
	NotFileGH Bitboard = ^(FileG | FileH)
)

// FileMask indexes the file masks by file number.
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask indexes the rank masks by rank number.
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set returns b with the bit at sq set.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear returns b with the bit at sq cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// Toggle returns b with the bit at sq flipped.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b ^ (1 << sq)
}

// IsSet reports whether the bit at sq is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square, or NoSquare if b is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest set square, or NoSquare if b is empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest set square, giving O(1) amortized
// iteration over set bits.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// More reports whether any bit is set.
func (b Bitboard) More() bool {
	return b != 0
}

// Empty reports whether no bit is set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// Mirror flips the bitboard vertically (rank 1 <-> rank 8) by byte swap.
// White-side masks mirror into black-side masks and vice versa.
func (b Bitboard) Mirror() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// Single-step shifts. East/west and the diagonals mask off the wrapped
// file so the board edge is respected.

// North shifts one rank toward rank 8.
func (b Bitboard) North() Bitboard {
	return b << 8
}

// South shifts one rank toward rank 1.
func (b Bitboard) South() Bitboard {
	return b >> 8
}

// East shifts one file toward file h.
func (b Bitboard) East() Bitboard {
	return (b << 1) & NotFileA
}

// West shifts one file toward file a.
func (b Bitboard) West() Bitboard {
	return (b >> 1) & NotFileH
}

// NorthEast shifts one square toward h8.
func (b Bitboard) NorthEast() Bitboard {
	return (b << 9) & NotFileA
}

// NorthWest shifts one square toward a8.
func (b Bitboard) NorthWest() Bitboard {
	return (b << 7) & NotFileH
}

// SouthEast shifts one square toward h1.
func (b Bitboard) SouthEast() Bitboard {
	return (b >> 7) & NotFileA
}

// SouthWest shifts one square toward a1.
func (b Bitboard) SouthWest() Bitboard {
	return (b >> 9) & NotFileH
}

// ForEach calls f for each set square, in ascending square order.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns the set squares in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String renders the bitboard as an 8x8 diagram with rank 8 on top.
func (b Bitboard) String() string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				s += "1 "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	s += "  a b c d e f g h\n"
	return s
}
