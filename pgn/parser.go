package pgn

import (
	"fmt"
	"io"

	"github.com/nvzqz/sage"
)

// Tag is a single PGN tag pair. Tags preserve document order.
type Tag struct {
	Name  string
	Value string
}

// Game is one parsed PGN game: its tag pairs, the verified-legal
// mainline moves, and the terminating result. Variations and comments
// are consumed but not retained on the mainline.
type Game struct {
	Tags   []Tag
	Moves  []sage.Move
	Result sage.Outcome

	// Errors collects the locally recoverable problems found while
	// parsing this game: malformed tag lines, unknown SAN tokens.
	Errors []error
}

// GetTag returns the value of the named tag, or "".
func (g *Game) GetTag(name string) string {
	for _, t := range g.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// SetTag sets or replaces a tag value.
func (g *Game) SetTag(name, value string) {
	for i, t := range g.Tags {
		if t.Name == name {
			g.Tags[i].Value = value
			return
		}
	}
	g.Tags = append(g.Tags, Tag{Name: name, Value: value})
}

// Replay plays the game's moves onto a fresh engine game and returns
// it. Games with a SetUp/FEN tag start from that position.
func (g *Game) Replay() (*sage.Game, error) {
	eng, err := g.startingPosition()
	if err != nil {
		return nil, err
	}
	for i, m := range g.Moves {
		if err := eng.Execute(m); err != nil {
			return nil, fmt.Errorf("replaying move %d: %w", i+1, err)
		}
	}
	return eng, nil
}

func (g *Game) startingPosition() (*sage.Game, error) {
	if fen := g.GetTag("FEN"); fen != "" {
		return sage.NewGameFromFEN(fen)
	}
	return sage.NewGame(), nil
}

// Parser parses PGN documents into Games.
type Parser struct {
	lexer   *Lexer
	current Token
	started bool
}

// NewParser returns a parser over r.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

func (p *Parser) next() {
	p.current = p.lexer.NextToken()
}

// ParseGame parses the next game from the input. It returns (nil, nil)
// when no further games remain. Locally recoverable problems are
// collected on the returned Game; only an unplayable mainline move
// aborts the game with an error.
func (p *Parser) ParseGame() (*Game, error) {
	if !p.started {
		p.next()
		p.started = true
	}

	game := &Game{Result: sage.NoOutcome}

	p.parseTags(game)

	replay, err := game.startingPosition()
	if err != nil {
		return nil, fmt.Errorf("line %d: bad FEN tag: %w", p.current.Line, err)
	}

	if err := p.parseMovetext(game, replay, 0); err != nil {
		return nil, err
	}

	if p.current.Type == EOFToken && len(game.Tags) == 0 && len(game.Moves) == 0 {
		return nil, nil
	}

	// Keep the Result tag consistent with the movetext terminator.
	if game.Result != sage.NoOutcome {
		if v := game.GetTag("Result"); v == "" || v == "*" || v == "?" {
			game.SetTag("Result", game.Result.String())
		}
	}
	return game, nil
}

// ParseAll parses every remaining game.
func (p *Parser) ParseAll() ([]*Game, error) {
	var games []*Game
	for {
		g, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if g == nil {
			return games, nil
		}
		games = append(games, g)
	}
}

// parseTags reads the tag-pair section. A malformed tag line fails
// individually and is recorded; parsing continues with the next token.
func (p *Parser) parseTags(game *Game) {
	for {
		switch p.current.Type {
		case TagToken:
			name := p.current.Text
			line := p.current.Line
			p.next()
			if p.current.Type != StringToken {
				game.Errors = append(game.Errors,
					fmt.Errorf("line %d: tag %q missing quoted value", line, name))
				p.recoverTag()
				continue
			}
			game.Tags = append(game.Tags, Tag{Name: name, Value: p.current.Text})
			p.next()
			// The closing bracket is required but its absence only
			// fails this tag, not the document.
			if p.current.Type == TagEndToken {
				p.next()
			} else {
				game.Errors = append(game.Errors,
					fmt.Errorf("line %d: tag %q missing ']'", line, name))
			}
		case TagEndToken:
			p.next()
		case ErrorToken:
			game.Errors = append(game.Errors,
				fmt.Errorf("line %d: %v", p.current.Line, p.current.Err))
			p.next()
		case CommentToken:
			p.next()
		default:
			return
		}
	}
}

// recoverTag skips to the end of a malformed tag pair.
func (p *Parser) recoverTag() {
	for {
		switch p.current.Type {
		case TagToken, MoveToken, MoveNumberToken, ResultToken, EOFToken:
			return
		case TagEndToken:
			p.next()
			return
		default:
			p.next()
		}
	}
}

// parseMovetext reads moves until the terminating result or the next
// game's tag section. Variations recurse on a copy of the replay game
// and are discarded; ravLevel tracks the nesting depth.
func (p *Parser) parseMovetext(game *Game, replay *sage.Game, ravLevel int) error {
	for {
		switch p.current.Type {
		case EOFToken:
			if ravLevel > 0 {
				return fmt.Errorf("line %d: unmatched '(' in variation", p.current.Line)
			}
			return nil

		case TagToken:
			if ravLevel > 0 {
				return fmt.Errorf("line %d: unmatched '(' in variation", p.current.Line)
			}
			return nil // next game's tag section

		case ResultToken:
			if ravLevel == 0 {
				outcome, err := sage.ParseOutcome(p.current.Text)
				if err != nil {
					game.Errors = append(game.Errors,
						fmt.Errorf("line %d: %w", p.current.Line, err))
				} else {
					game.Result = outcome
				}
				p.next()
				return nil
			}
			p.next()

		case MoveNumberToken, CommentToken, NAGToken:
			p.next()

		case RAVStartToken:
			p.next()
			// The variation is an alternative to the enclosing line's
			// last move, so it diverges one move back.
			side := replay.Copy()
			side.Undo()
			if err := p.parseMovetext(game, side, ravLevel+1); err != nil {
				return err
			}

		case RAVEndToken:
			p.next()
			if ravLevel == 0 {
				game.Errors = append(game.Errors,
					fmt.Errorf("line %d: unmatched ')'", p.current.Line))
				continue
			}
			return nil

		case MoveToken:
			text := p.current.Text
			line := p.current.Line
			m, err := replay.ParseSAN(text)
			if err != nil {
				if ravLevel > 0 {
					// A broken side line is dropped, not fatal.
					game.Errors = append(game.Errors,
						fmt.Errorf("line %d: variation: %w", line, err))
					p.skipVariationRemainder()
					return nil
				}
				return fmt.Errorf("line %d: %w", line, err)
			}
			if execErr := replay.Execute(m); execErr != nil {
				return fmt.Errorf("line %d: %w", line, execErr)
			}
			if ravLevel == 0 {
				game.Moves = append(game.Moves, m)
			}
			p.next()

		case TagEndToken:
			game.Errors = append(game.Errors,
				fmt.Errorf("line %d: unmatched ']'", p.current.Line))
			p.next()

		case ErrorToken:
			game.Errors = append(game.Errors,
				fmt.Errorf("line %d: %v", p.current.Line, p.current.Err))
			p.next()

		default:
			p.next()
		}
	}
}

// skipVariationRemainder discards tokens to the end of the current
// variation, honoring nesting.
func (p *Parser) skipVariationRemainder() {
	depth := 1
	for depth > 0 {
		switch p.current.Type {
		case EOFToken:
			return
		case RAVStartToken:
			depth++
		case RAVEndToken:
			depth--
		}
		p.next()
	}
}
