package pgn

import (
	"fmt"
	"io"
	"strings"

	"github.com/nvzqz/sage"
)

// sevenTagRoster is the mandatory export-order tag set.
var sevenTagRoster = [7]string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

const exportLineWidth = 80

// NewGameFrom captures a played engine game as a PGN Game with the
// seven-tag roster stubbed out for the caller to fill in.
func NewGameFrom(eng *sage.Game) *Game {
	g := &Game{
		Moves:  eng.History(),
		Result: eng.Outcome(),
	}
	for _, name := range sevenTagRoster {
		g.SetTag(name, "?")
	}
	g.SetTag("Result", g.Result.String())
	if start := eng.StartingFEN(); start != sage.StartFEN {
		g.SetTag("SetUp", "1")
		g.SetTag("FEN", start)
	}
	return g
}

// Encode writes the game in PGN export format: the seven-tag roster in
// order, remaining tags in document order, then movetext wrapped at 80
// columns and ended by the result token.
func (g *Game) Encode(w io.Writer) error {
	for _, name := range sevenTagRoster {
		value := g.GetTag(name)
		if value == "" {
			value = "?"
			if name == "Result" {
				value = g.Result.String()
			}
		}
		if _, err := fmt.Fprintf(w, "[%s %q]\n", name, value); err != nil {
			return err
		}
	}
	for _, t := range g.Tags {
		if isRosterTag(t.Name) {
			continue
		}
		if _, err := fmt.Fprintf(w, "[%s %q]\n", t.Name, t.Value); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	movetext, err := g.movetext()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, wrapText(movetext, exportLineWidth)); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// String returns the PGN export text.
func (g *Game) String() string {
	var sb strings.Builder
	if err := g.Encode(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// movetext renders the mainline in SAN by replaying from the start
// position.
func (g *Game) movetext() (string, error) {
	eng, err := g.startingPosition()
	if err != nil {
		return "", err
	}

	var parts []string
	for i, m := range g.Moves {
		if eng.Turn() == sage.White {
			parts = append(parts, fmt.Sprintf("%d.", eng.FullmoveNumber()))
		} else if i == 0 {
			parts = append(parts, fmt.Sprintf("%d...", eng.FullmoveNumber()))
		}
		parts = append(parts, eng.SAN(m))
		if err := eng.Execute(m); err != nil {
			return "", fmt.Errorf("encoding move %d: %w", i+1, err)
		}
	}
	parts = append(parts, g.Result.String())
	return strings.Join(parts, " "), nil
}

func isRosterTag(name string) bool {
	for _, r := range sevenTagRoster {
		if r == name {
			return true
		}
	}
	return false
}

// wrapText folds text at word boundaries to the given width.
func wrapText(text string, width int) string {
	var sb strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteByte('\n')
			lineLen = 0
		} else if lineLen > 0 {
			sb.WriteByte(' ')
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
