// Package pgn reads and writes Portable Game Notation. The lexer and
// parser translate PGN movetext into verified-legal move sequences by
// replaying each SAN token against a game, and the encoder produces
// seven-tag-roster documents from played games.
package pgn

// TokenType classifies a lexical token.
type TokenType int

const (
	EOFToken TokenType = iota
	TagToken
	TagEndToken
	StringToken
	CommentToken
	NAGToken
	MoveNumberToken
	MoveToken
	RAVStartToken
	RAVEndToken
	ResultToken
	ErrorToken

	// Internal character classes used by the scanner.
	clsWhitespace
	clsTagStart
	clsTagEnd
	clsQuote
	clsCommentStart
	clsCommentEnd
	clsLineComment
	clsNAG
	clsAnnotate
	clsDot
	clsRAVStart
	clsRAVEnd
	clsAlpha
	clsDigit
	clsStar
	clsPercent
	clsError
)

var tokenNames = map[TokenType]string{
	EOFToken:        "EOF",
	TagToken:        "TAG",
	TagEndToken:     "TAG_END",
	StringToken:     "STRING",
	CommentToken:    "COMMENT",
	NAGToken:        "NAG",
	MoveNumberToken: "MOVE_NUMBER",
	MoveToken:       "MOVE",
	RAVStartToken:   "RAV_START",
	RAVEndToken:     "RAV_END",
	ResultToken:     "RESULT",
	ErrorToken:      "ERROR",
}

// String returns the token type name.
func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is a lexical token with its text and source position.
type Token struct {
	Type TokenType
	Text string
	Line int

	// Err describes a locally recoverable lexical error such as an
	// unmatched quote or brace; the Text carries the offending input.
	Err error
}
