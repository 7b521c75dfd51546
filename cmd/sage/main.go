// Command sage is a small front end for the rules engine: position
// inspection from FEN, perft verification counts, PGN replay, and SVG
// board rendering.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nvzqz/sage"
	"github.com/nvzqz/sage/pgn"
)

var (
	fenFlag   = flag.String("fen", "", "position to inspect (defaults to the starting position)")
	perftFlag = flag.Int("perft", 0, "run perft to the given depth")
	pgnFlag   = flag.String("pgn", "", "replay the games in a PGN file")
	svgFlag   = flag.String("svg", "", "write the position as an SVG diagram to the given file")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *pgnFlag != "" {
		replayPGN(*pgnFlag)
		return
	}

	fen := *fenFlag
	if fen == "" {
		fen = sage.StartFEN
	}
	game, err := sage.NewGameFromFEN(fen)
	if err != nil {
		log.Fatalf("bad FEN: %v", err)
	}

	if *svgFlag != "" {
		writeSVG(game, *svgFlag)
		return
	}
	if *perftFlag > 0 {
		runPerft(game, *perftFlag)
		return
	}
	inspect(game)
}

func inspect(game *sage.Game) {
	fmt.Print(game.Board())
	fmt.Printf("\nFEN: %s\n", game.FEN())
	fmt.Printf("Outcome: %s\n", game.Outcome())
	if game.InCheck() {
		fmt.Printf("%s is in check\n", game.Turn())
	}

	moves := game.LegalMoves()
	fmt.Printf("Legal moves (%d):", len(moves))
	for _, m := range moves {
		fmt.Printf(" %s", game.SAN(m))
	}
	fmt.Println()
}

func runPerft(game *sage.Game, depth int) {
	for d := 1; d <= depth; d++ {
		fmt.Printf("perft(%d) = %d\n", d, perft(game, d))
	}
}

// perft counts leaf nodes of the legal move tree, the standard way to
// verify move generation.
func perft(g *sage.Game, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := g.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		if err := g.Execute(m); err != nil {
			log.Fatalf("perft: %v", err)
		}
		nodes += perft(g, depth-1)
		g.Undo()
	}
	return nodes
}

func replayPGN(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	parser := pgn.NewParser(f)
	for n := 1; ; n++ {
		game, err := parser.ParseGame()
		if err != nil {
			log.Fatalf("game %d: %v", n, err)
		}
		if game == nil {
			return
		}
		final, err := game.Replay()
		if err != nil {
			log.Fatalf("game %d: %v", n, err)
		}
		fmt.Printf("%d: %s - %s  %s  (%d plies)\n", n,
			tagOr(game, "White"), tagOr(game, "Black"), game.Result, len(game.Moves))
		fmt.Printf("   final: %s\n", final.FEN())
		for _, e := range game.Errors {
			log.Printf("   warning: %v", e)
		}
	}
}

func tagOr(g *pgn.Game, name string) string {
	if v := g.GetTag(name); v != "" {
		return v
	}
	return "?"
}

func writeSVG(game *sage.Game, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	game.Board().WriteSVG(f)
}
