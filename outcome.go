package sage

import "fmt"

// Outcome is the result of a game, encoded with the exact PGN result
// tokens so the values interoperate with PGN Result tags.
type Outcome string

const (
	WhiteWin  Outcome = "1-0"
	BlackWin  Outcome = "0-1"
	Draw      Outcome = "1/2-1/2"
	NoOutcome Outcome = "*"
)

// Winner returns the winning color, or NoColor for a draw or an
// undecided game.
func (o Outcome) Winner() Color {
	switch o {
	case WhiteWin:
		return White
	case BlackWin:
		return Black
	default:
		return NoColor
	}
}

// String returns the PGN result token.
func (o Outcome) String() string {
	return string(o)
}

// ParseOutcome parses a PGN result token.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "1-0":
		return WhiteWin, nil
	case "0-1":
		return BlackWin, nil
	case "1/2-1/2":
		return Draw, nil
	case "*":
		return NoOutcome, nil
	default:
		return NoOutcome, fmt.Errorf("invalid game result %q", s)
	}
}

// winFor returns the win outcome for the given color.
func winFor(c Color) Outcome {
	if c == White {
		return WhiteWin
	}
	return BlackWin
}
