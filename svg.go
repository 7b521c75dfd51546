package sage

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

// Unicode chess figurines indexed by Piece.
var figurines = [12]string{
	"♙", "♘", "♗", "♖", "♕", "♔", // white
	"♟", "♞", "♝", "♜", "♛", "♚", // black
}

const svgSquareSize = 45

// WriteSVG renders the board as an SVG diagram with rank 8 at the top,
// light and dark squares, and figurine piece glyphs. It is a plain text
// export, independent of any UI toolkit.
func (b *Board) WriteSVG(w io.Writer) {
	canvas := svg.New(w)
	size := 8 * svgSquareSize
	canvas.Start(size, size)

	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			x := file * svgSquareSize
			y := (7 - rank) * svgSquareSize

			fill := "fill:rgb(240,217,181)"
			if (file+rank)%2 == 0 {
				fill = "fill:rgb(181,136,99)"
			}
			canvas.Rect(x, y, svgSquareSize, svgSquareSize, fill)

			piece := b.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				continue
			}
			canvas.Text(x+svgSquareSize/2, y+svgSquareSize*3/4, figurines[piece],
				"text-anchor:middle;font-size:34px")
		}
	}

	canvas.End()
}
