package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/rowql/pkg/token"
)

// Lexer splits WHERE-condition text into tokens.
//
// Separators are "(" and ")" and the whole-word keywords AND and OR in any
// case. Everything between separators is a FRAGMENT with surrounding
// whitespace trimmed; whitespace-only fragments are dropped. Quotes are not
// special, so a keyword inside a quoted literal still splits the text.
type Lexer struct {
	input string
	pos   int // current position in input
}

// NewLexer creates a new Lexer for the given condition text.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize returns all tokens of cond in order, without the trailing EOF.
func Tokenize(cond string) []token.Token {
	l := NewLexer(cond)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or an EOF token at the end of input.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := token.Position{Offset: l.pos}
	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOF, Pos: pos}
	}

	switch l.input[l.pos] {
	case '(':
		l.pos++
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}
	case ')':
		l.pos++
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}
	}

	if n := l.keywordAt(l.pos); n > 0 {
		word := l.input[l.pos : l.pos+n]
		l.pos += n
		return token.Token{Type: token.LookupKeyword(word), Literal: word, Pos: pos}
	}

	return l.readFragment(pos)
}

// readFragment reads up to the next separator.
func (l *Lexer) readFragment(pos token.Position) token.Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '(' || ch == ')' || l.keywordAt(l.pos) > 0 {
			break
		}
		l.pos++
	}
	lit := strings.TrimRight(l.input[start:l.pos], " \t\r\n\f\v")
	return token.Token{Type: token.FRAGMENT, Literal: lit, Pos: pos}
}

// keywordAt returns the length of the AND/OR keyword starting at i, or 0.
// The keyword must be a whole word; letters and digits of any script
// count as word characters.
func (l *Lexer) keywordAt(i int) int {
	if r, _ := utf8.DecodeLastRuneInString(l.input[:i]); i > 0 && isWordRune(r) {
		return 0
	}
	for _, kw := range [...]string{"and", "or"} {
		end := i + len(kw)
		if end > len(l.input) || !strings.EqualFold(l.input[i:end], kw) {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(l.input[end:]); end < len(l.input) && isWordRune(r) {
			continue
		}
		return len(kw)
	}
	return 0
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
