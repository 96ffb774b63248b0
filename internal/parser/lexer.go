// Package parser turns UI source text into node trees with exact byte spans.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the lexical class of a token.
type TokenType int

// Token types.
const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenChar
	TokenPunct
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenChar:
		return "char"
	default:
		return "punctuation"
	}
}

// Token is one lexeme. Start and End are byte offsets into the source.
type Token struct {
	Type  TokenType
	Text  string
	Start int
	End   int
	// NewlineBefore is set when a line break separates this token from the
	// previous one.
	NewlineBefore bool
	// Template marks strings containing `$` templates or raw triple quotes.
	Template bool
	// Value is the decoded content of a plain string literal.
	Value string
}

// Is reports whether the token is the given punctuation.
func (t Token) Is(punct string) bool {
	return t.Type == TokenPunct && t.Text == punct
}

// LexError reports a lexical failure at a byte offset.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// multi-character punctuation, longest first
var puncts = []string{
	"===", "!==",
	"->", "==", "!=", "<=", ">=", "&&", "||", "::", "?.", "?:", "..", "!!",
	"+=", "-=", "*=", "/=", "%=", "++", "--",
}

// Lexer tokenizes source text.
type Lexer struct {
	input   string
	pos     int
	newline bool
}

// NewLexer creates a Lexer for input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize lexes the whole input. The returned slice does not include an
// EOF token.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)

	var tokens []Token

	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		if tok.Type == TokenEOF {
			return tokens, nil
		}

		tokens = append(tokens, tok)
	}
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}

	newline := l.newline
	l.newline = false

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Start: l.pos, End: l.pos, NewlineBefore: newline}, nil
	}

	start := l.pos
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])

	var (
		tok Token
		err error
	)

	switch {
	case r == '_' || unicode.IsLetter(r):
		tok = l.readIdent(start)
	case r == '`':
		tok, err = l.readQuotedIdent(start)
	case r >= '0' && r <= '9':
		tok = l.readNumber(start)
	case r == '"':
		tok, err = l.readString(start)
	case r == '\'':
		tok, err = l.readChar(start)
	default:
		tok = l.readPunct(start, size)
	}

	if err != nil {
		return Token{}, err
	}

	tok.NewlineBefore = newline

	return tok, nil
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for l.pos < len(l.input) {
		c := l.input[l.pos]

		switch {
		case c == '\n':
			l.newline = true
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			l.pos++
		case strings.HasPrefix(l.input[l.pos:], "//"):
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case strings.HasPrefix(l.input[l.pos:], "/*"):
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}

	return nil
}

// block comments nest
func (l *Lexer) skipBlockComment() error {
	start := l.pos
	depth := 0

	for l.pos < len(l.input) {
		switch {
		case strings.HasPrefix(l.input[l.pos:], "/*"):
			depth++
			l.pos += 2
		case strings.HasPrefix(l.input[l.pos:], "*/"):
			depth--
			l.pos += 2

			if depth == 0 {
				return nil
			}
		default:
			if l.input[l.pos] == '\n' {
				l.newline = true
			}
			l.pos++
		}
	}

	return &LexError{Offset: start, Msg: "unterminated block comment"}
}

func (l *Lexer) readIdent(start int) Token {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos += size
	}

	return Token{Type: TokenIdent, Text: l.input[start:l.pos], Start: start, End: l.pos}
}

func (l *Lexer) readQuotedIdent(start int) (Token, error) {
	end := strings.IndexAny(l.input[start+1:], "`\n")
	if end < 0 || l.input[start+1+end] != '`' {
		return Token{}, &LexError{Offset: start, Msg: "unterminated quoted identifier"}
	}

	l.pos = start + 1 + end + 1

	return Token{Type: TokenIdent, Text: l.input[start:l.pos], Start: start, End: l.pos}, nil
}

func (l *Lexer) readNumber(start int) Token {
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' || c == '_' }
	isHex := func(c byte) bool {
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}

	if strings.HasPrefix(l.input[l.pos:], "0x") || strings.HasPrefix(l.input[l.pos:], "0X") {
		l.pos += 2
		for l.pos < len(l.input) && isHex(l.input[l.pos]) {
			l.pos++
		}
	} else {
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}

		// a dot only belongs to the number when a digit follows: `16.dp` is
		// a member access
		if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && l.input[l.pos+1] >= '0' && l.input[l.pos+1] <= '9' {
			l.pos++
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}

		if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
			save := l.pos
			l.pos++

			if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
				l.pos++
			}

			if l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
				for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
					l.pos++
				}
			} else {
				l.pos = save
			}
		}
	}

	for l.pos < len(l.input) && strings.IndexByte("fFLuU", l.input[l.pos]) >= 0 {
		l.pos++
	}

	return Token{Type: TokenNumber, Text: l.input[start:l.pos], Start: start, End: l.pos}
}

func (l *Lexer) readString(start int) (Token, error) {
	if strings.HasPrefix(l.input[start:], `"""`) {
		end := strings.Index(l.input[start+3:], `"""`)
		if end < 0 {
			return Token{}, &LexError{Offset: start, Msg: "unterminated raw string"}
		}

		l.pos = start + 3 + end + 3
		// a raw string may end with more than three quotes
		for l.pos < len(l.input) && l.input[l.pos] == '"' {
			l.pos++
		}

		return Token{Type: TokenString, Text: l.input[start:l.pos], Start: start, End: l.pos, Template: true}, nil
	}

	l.pos = start + 1

	var (
		sb       strings.Builder
		template bool
	)

	for {
		if l.pos >= len(l.input) || l.input[l.pos] == '\n' {
			return Token{}, &LexError{Offset: start, Msg: "unterminated string literal"}
		}

		c := l.input[l.pos]

		switch c {
		case '"':
			l.pos++

			return Token{
				Type:     TokenString,
				Text:     l.input[start:l.pos],
				Start:    start,
				End:      l.pos,
				Template: template,
				Value:    sb.String(),
			}, nil
		case '\\':
			r, err := l.readEscape()
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(r)
		case '$':
			next := byte(0)
			if l.pos+1 < len(l.input) {
				next = l.input[l.pos+1]
			}

			switch {
			case next == '{':
				template = true
				if err := l.skipTemplateExpr(); err != nil {
					return Token{}, err
				}
			case next == '_' || unicode.IsLetter(rune(next)):
				template = true
				l.pos++
			default:
				sb.WriteByte(c)
				l.pos++
			}
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
}

// readEscape consumes a backslash escape and returns the rune it denotes.
func (l *Lexer) readEscape() (rune, error) {
	start := l.pos
	if l.pos+1 >= len(l.input) {
		return 0, &LexError{Offset: start, Msg: "unterminated escape"}
	}

	c := l.input[l.pos+1]
	l.pos += 2

	switch c {
	case 't':
		return '\t', nil
	case 'b':
		return '\b', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case '\'', '"', '\\', '$':
		return rune(c), nil
	case 'u':
		if l.pos+4 > len(l.input) {
			return 0, &LexError{Offset: start, Msg: "short unicode escape"}
		}

		v, err := strconv.ParseUint(l.input[l.pos:l.pos+4], 16, 32)
		if err != nil {
			return 0, &LexError{Offset: start, Msg: "invalid unicode escape"}
		}

		l.pos += 4

		return rune(v), nil
	default:
		return 0, &LexError{Offset: start, Msg: fmt.Sprintf("invalid escape \\%c", c)}
	}
}

// skipTemplateExpr skips `${ ... }`, including braces and strings nested in
// the expression.
func (l *Lexer) skipTemplateExpr() error {
	start := l.pos
	l.pos += 2
	depth := 1

	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '{':
			depth++
			l.pos++
		case '}':
			depth--
			l.pos++

			if depth == 0 {
				return nil
			}
		case '"':
			if _, err := l.readString(l.pos); err != nil {
				return err
			}
		case '\n':
			return &LexError{Offset: start, Msg: "unterminated string template"}
		default:
			l.pos++
		}
	}

	return &LexError{Offset: start, Msg: "unterminated string template"}
}

func (l *Lexer) readChar(start int) (Token, error) {
	l.pos = start + 1

	for l.pos < len(l.input) && l.input[l.pos] != '\'' && l.input[l.pos] != '\n' {
		if l.input[l.pos] == '\\' {
			l.pos++
		}
		l.pos++
	}

	if l.pos >= len(l.input) || l.input[l.pos] != '\'' {
		return Token{}, &LexError{Offset: start, Msg: "unterminated character literal"}
	}

	l.pos++

	return Token{Type: TokenChar, Text: l.input[start:l.pos], Start: start, End: l.pos}, nil
}

func (l *Lexer) readPunct(start, size int) Token {
	for _, p := range puncts {
		if strings.HasPrefix(l.input[start:], p) {
			l.pos = start + len(p)
			return Token{Type: TokenPunct, Text: p, Start: start, End: l.pos}
		}
	}

	l.pos = start + size

	return Token{Type: TokenPunct, Text: l.input[start:l.pos], Start: start, End: l.pos}
}
