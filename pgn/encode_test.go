package pgn

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nvzqz/sage"
)

func TestEncodeFoolsMate(t *testing.T) {
	eng := sage.NewGame()
	for _, san := range []string{"f3", "e5", "g4", "Qh4#"} {
		m, err := eng.ParseSAN(san)
		if err != nil {
			t.Fatal(err)
		}
		if err := eng.Execute(m); err != nil {
			t.Fatal(err)
		}
	}

	g := NewGameFrom(eng)
	g.SetTag("White", "Amateur")
	g.SetTag("Black", "Visitor")

	want := `[Event "?"]
[Site "?"]
[Date "?"]
[Round "?"]
[White "Amateur"]
[Black "Visitor"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1
`
	if diff := cmp.Diff(want, g.String()); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	eng := sage.NewGame()
	for _, san := range []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6"} {
		m, err := eng.ParseSAN(san)
		if err != nil {
			t.Fatal(err)
		}
		if err := eng.Execute(m); err != nil {
			t.Fatal(err)
		}
	}
	g := NewGameFrom(eng)

	parsed, err := NewParser(strings.NewReader(g.String())).ParseGame()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(g.Moves, parsed.Moves); diff != "" {
		t.Errorf("moves mismatch after round trip (-want +got):\n%s", diff)
	}

	replayed, err := parsed.Replay()
	if err != nil {
		t.Fatal(err)
	}
	if replayed.FEN() != eng.FEN() {
		t.Errorf("replay reached %q, want %q", replayed.FEN(), eng.FEN())
	}
}

func TestEncodeWithStartPosition(t *testing.T) {
	start := "8/P6k/8/8/8/8/8/7K w - - 0 1"
	eng, err := sage.NewGameFromFEN(start)
	if err != nil {
		t.Fatal(err)
	}
	m, err := eng.ParseSAN("a8=Q")
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Execute(m); err != nil {
		t.Fatal(err)
	}

	g := NewGameFrom(eng)
	if g.GetTag("SetUp") != "1" || g.GetTag("FEN") != start {
		t.Fatalf("custom start position needs SetUp and FEN tags: %v", g.Tags)
	}
	if !strings.Contains(g.String(), "1. a8=Q") {
		t.Errorf("movetext missing promotion:\n%s", g.String())
	}

	parsed, err := NewParser(strings.NewReader(g.String())).ParseGame()
	if err != nil {
		t.Fatal(err)
	}
	replayed, err := parsed.Replay()
	if err != nil {
		t.Fatal(err)
	}
	if replayed.FEN() != eng.FEN() {
		t.Errorf("replay reached %q, want %q", replayed.FEN(), eng.FEN())
	}
}

func TestEncodeBlackToMoveStart(t *testing.T) {
	eng, err := sage.NewGameFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m, err := eng.ParseSAN("e5")
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Execute(m); err != nil {
		t.Fatal(err)
	}

	g := NewGameFrom(eng)
	if !strings.Contains(g.String(), "1... e5") {
		t.Errorf("black's opening move should carry the ellipsis number:\n%s", g.String())
	}
}

func TestEncodeLineWrapping(t *testing.T) {
	eng := sage.NewGame()
	// Shuffle long enough to exceed one export line.
	moves := []string{"Nf3", "Nf6", "Ng1", "Ng8"}
	for i := 0; i < 6; i++ {
		for _, san := range moves {
			m, err := eng.ParseSAN(san)
			if err != nil {
				t.Fatal(err)
			}
			if err := eng.Execute(m); err != nil {
				t.Fatal(err)
			}
		}
	}

	g := NewGameFrom(eng)
	for _, line := range strings.Split(g.String(), "\n") {
		if len(line) > exportLineWidth {
			t.Errorf("export line exceeds %d columns: %q", exportLineWidth, line)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("aa bb cc dd", 5)
	if got != "aa bb\ncc dd" {
		t.Errorf("wrapText = %q", got)
	}
	if got := wrapText("", 10); got != "" {
		t.Errorf("wrapText of empty = %q", got)
	}
}
