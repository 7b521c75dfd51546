package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Lexer tokenizes PGN input line by line.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum int
	eof     bool
}

// Character classification table.
var chTab [256]TokenType

// Characters that may appear inside a SAN move token.
var moveChars [256]bool

func init() {
	for i := range chTab {
		chTab[i] = clsError
	}
	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = clsWhitespace
	}
	chTab['['] = clsTagStart
	chTab[']'] = clsTagEnd
	chTab['"'] = clsQuote
	chTab['{'] = clsCommentStart
	chTab['}'] = clsCommentEnd
	chTab[';'] = clsLineComment
	chTab['$'] = clsNAG
	chTab['!'] = clsAnnotate
	chTab['?'] = clsAnnotate
	chTab['.'] = clsDot
	chTab['('] = clsRAVStart
	chTab[')'] = clsRAVEnd
	chTab['*'] = clsStar
	chTab['%'] = clsPercent
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = clsDigit
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = clsAlpha
		chTab[c+32] = clsAlpha
	}
	chTab['_'] = clsAlpha

	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}
	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B', 'O', 'o', '0', 'x', '=', '-', '+', '#'} {
		moveChars[c] = true
	}
}

// NewLexer returns a lexer over r.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// LineNumber returns the 1-based line of the most recent token.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}

func (l *Lexer) readLine() bool {
	line, err := l.reader.ReadString('\n')
	if len(line) == 0 && err != nil {
		l.eof = true
		return false
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// NextToken returns the next token, or an EOFToken at end of input.
// Lexical errors are reported as ErrorTokens carrying the offending
// text; the lexer recovers and continues.
func (l *Lexer) NextToken() Token {
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				return Token{Type: EOFToken, Line: l.lineNum}
			}
			// An escape line ("%...") is skipped whole.
			if strings.HasPrefix(l.line, "%") {
				l.pos = len(l.line)
				continue
			}
		}

		ch := l.currentChar()
		start := l.pos
		l.pos++

		switch chTab[ch] {
		case clsWhitespace:
			continue
		case clsTagStart:
			return l.lexTag()
		case clsQuote:
			return l.lexString()
		case clsCommentStart:
			return l.lexBraceComment()
		case clsLineComment:
			text := strings.TrimRight(l.line[l.pos:], "\r\n")
			l.pos = len(l.line)
			return Token{Type: CommentToken, Text: text, Line: l.lineNum}
		case clsCommentEnd:
			return l.errToken("}", fmt.Errorf("unmatched '}'"))
		case clsTagEnd:
			return Token{Type: TagEndToken, Text: "]", Line: l.lineNum}
		case clsNAG:
			return l.lexNAG()
		case clsAnnotate:
			// Suffix annotations (!, ?, !!, ??, !?, ?!) map onto NAGs.
			for l.currentChar() == '!' || l.currentChar() == '?' {
				l.pos++
			}
			return Token{Type: NAGToken, Text: l.line[start:l.pos], Line: l.lineNum}
		case clsDot:
			continue
		case clsRAVStart:
			return Token{Type: RAVStartToken, Text: "(", Line: l.lineNum}
		case clsRAVEnd:
			return Token{Type: RAVEndToken, Text: ")", Line: l.lineNum}
		case clsStar:
			return Token{Type: ResultToken, Text: "*", Line: l.lineNum}
		case clsDigit:
			return l.lexNumeric(start)
		case clsAlpha:
			return l.lexMove(start)
		default:
			return l.errToken(string(ch), fmt.Errorf("unexpected character %q", ch))
		}
	}
}

func (l *Lexer) errToken(text string, err error) Token {
	return Token{Type: ErrorToken, Text: text, Line: l.lineNum, Err: err}
}

// lexTag scans "[Name" after the '[' has been consumed; the parser reads
// the string value and closing bracket as separate tokens.
func (l *Lexer) lexTag() Token {
	for l.currentChar() == ' ' || l.currentChar() == '\t' {
		l.pos++
	}
	start := l.pos
	for chTab[l.currentChar()] == clsAlpha || chTab[l.currentChar()] == clsDigit {
		l.pos++
	}
	if l.pos == start {
		return l.errToken(strings.TrimRight(l.line, "\r\n"),
			fmt.Errorf("malformed tag: missing name"))
	}
	return Token{Type: TagToken, Text: l.line[start:l.pos], Line: l.lineNum}
}

// lexString scans a quoted tag value with backslash escapes. The PGN
// grammar does not allow strings to span lines, so an unterminated
// string is an error for that tag alone.
func (l *Lexer) lexString() Token {
	var sb strings.Builder
	for {
		ch := l.currentChar()
		switch ch {
		case 0, '\n':
			return l.errToken(sb.String(), fmt.Errorf("unmatched '\"' in tag value"))
		case '\\':
			l.pos++
			if next := l.currentChar(); next == '"' || next == '\\' {
				sb.WriteByte(next)
				l.pos++
			} else {
				sb.WriteByte('\\')
			}
		case '"':
			l.pos++
			return Token{Type: StringToken, Text: sb.String(), Line: l.lineNum}
		default:
			sb.WriteByte(ch)
			l.pos++
		}
	}
}

// lexBraceComment scans a {...} comment, which may span lines.
func (l *Lexer) lexBraceComment() Token {
	var sb strings.Builder
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				return l.errToken(sb.String(), fmt.Errorf("unmatched '{' in comment"))
			}
			continue
		}
		ch := l.line[l.pos]
		l.pos++
		if ch == '}' {
			return Token{Type: CommentToken, Text: strings.TrimSpace(sb.String()), Line: l.lineNum}
		}
		sb.WriteByte(ch)
	}
}

func (l *Lexer) lexNAG() Token {
	start := l.pos
	for chTab[l.currentChar()] == clsDigit {
		l.pos++
	}
	return Token{Type: NAGToken, Text: "$" + l.line[start:l.pos], Line: l.lineNum}
}

// lexNumeric distinguishes move numbers from digit-led results and from
// digit-led castling spellings ("0-0").
func (l *Lexer) lexNumeric(start int) Token {
	for chTab[l.currentChar()] == clsDigit {
		l.pos++
	}
	text := l.line[start:l.pos]

	switch {
	case text == "1" && strings.HasPrefix(l.line[l.pos:], "-0"):
		l.pos += 2
		return Token{Type: ResultToken, Text: "1-0", Line: l.lineNum}
	case text == "0" && strings.HasPrefix(l.line[l.pos:], "-1"):
		l.pos += 2
		return Token{Type: ResultToken, Text: "0-1", Line: l.lineNum}
	case text == "1" && strings.HasPrefix(l.line[l.pos:], "/2-1/2"):
		l.pos += 6
		return Token{Type: ResultToken, Text: "1/2-1/2", Line: l.lineNum}
	case text == "0" && (strings.HasPrefix(l.line[l.pos:], "-0-0") || strings.HasPrefix(l.line[l.pos:], "-0")):
		return l.lexMove(start)
	}
	return Token{Type: MoveNumberToken, Text: text, Line: l.lineNum}
}

// lexMove scans a SAN move token.
func (l *Lexer) lexMove(start int) Token {
	for moveChars[l.currentChar()] {
		l.pos++
	}
	return Token{Type: MoveToken, Text: l.line[start:l.pos], Line: l.lineNum}
}
