// Package token defines the token types and operators of the WHERE-condition
// grammar.
//
// A condition is split into a flat token stream: parentheses, the logical
// keywords AND/OR, and comparison fragments such as "pop > 1000". Fragments
// are split into operands and a ComparisonOp by the parser, not the lexer.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Grouping
	LPAREN // (
	RPAREN // )

	// Logical keywords
	AND
	OR

	// FRAGMENT is any other run of text between separators, usually a
	// comparison such as "state != 'CA'".
	FRAGMENT
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:      "EOF",
	ILLEGAL:  "ILLEGAL",
	LPAREN:   "(",
	RPAREN:   ")",
	AND:      "AND",
	OR:       "OR",
	FRAGMENT: "FRAGMENT",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and": AND,
	"or":  OR,
}

// LookupKeyword returns the logical keyword token for word, matched
// case-insensitively. It returns FRAGMENT when word is not a keyword.
func LookupKeyword(word string) TokenType {
	if tok, ok := keywords[strings.ToLower(word)]; ok {
		return tok
	}
	return FRAGMENT
}

// IsLogical returns true if the token type is a logical keyword.
func IsLogical(t TokenType) bool {
	return t == AND || t == OR
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	if t.Type == FRAGMENT {
		return fmt.Sprintf("%q", t.Literal)
	}
	return t.Type.String()
}

// ComparisonOp is one of the binary comparison operators of a fragment.
type ComparisonOp string

// Comparison operators. NE precedes EQ in ComparisonOps so that "!=" is
// never split as "!" followed by "=".
const (
	NE ComparisonOp = "!="
	EQ ComparisonOp = "="
	LT ComparisonOp = "<"
	GT ComparisonOp = ">"
)

// ComparisonOps lists the comparison operators in match priority order.
var ComparisonOps = []ComparisonOp{NE, EQ, LT, GT}

// Valid reports whether op is a known comparison operator.
func (op ComparisonOp) Valid() bool {
	switch op {
	case EQ, NE, LT, GT:
		return true
	}
	return false
}

func (op ComparisonOp) String() string { return string(op) }

// LogicalOp joins two boolean expressions.
type LogicalOp string

// Logical operators.
const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
)

// Valid reports whether op is a known logical operator.
func (op LogicalOp) Valid() bool {
	return op == OpAnd || op == OpOr
}

func (op LogicalOp) String() string { return string(op) }

// LogicalOpFor returns the LogicalOp for a keyword token type.
func LogicalOpFor(t TokenType) (LogicalOp, bool) {
	switch t {
	case AND:
		return OpAnd, true
	case OR:
		return OpOr, true
	}
	return "", false
}
