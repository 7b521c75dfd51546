package sage

import (
	"strings"
	"testing"
)

func TestWriteSVG(t *testing.T) {
	var sb strings.Builder
	NewStandardBoard().WriteSVG(&sb)
	out := sb.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	// 32 pieces drawn as text glyphs.
	if n := strings.Count(out, "<text"); n != 32 {
		t.Errorf("drew %d piece glyphs, want 32", n)
	}
}
