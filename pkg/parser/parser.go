// Package parser parses rowql statements and WHERE conditions.
//
// # Usage
//
//	q, err := parser.Parse("SELECT state FROM TABLE WHERE pop > 20000000;")
//	if err != nil {
//	    // errors.Is(err, core.ErrMalformedStatement), core.ErrUnknownTable, ...
//	}
//
// Use New with core.Options to select permissive mode, standard precedence
// or a different placeholder table name.
//
// # Grammar Overview
//
//	statement → SELECT ("*" | ident {"," ident}) FROM ident
//	            [WHERE condition] [LIMIT uint] ";"
//
// Keywords are case-insensitive. See parser_expr.go for the condition grammar.
package parser

import "github.com/leapstack-labs/rowql/pkg/core"

// Parser parses statements and conditions under a fixed set of options.
// A Parser holds no per-query state and may be shared.
type Parser struct {
	opts core.Options
}

// New creates a parser. Zero fields of opts take their defaults.
func New(opts core.Options) *Parser {
	return &Parser{opts: opts.WithDefaults()}
}

// Options returns the parser's options.
func (p *Parser) Options() core.Options {
	return p.opts
}

// Parse parses a statement with default options.
func Parse(text string) (*core.Query, error) {
	return New(core.DefaultOptions()).Parse(text)
}

// ParseCondition parses WHERE-condition text with default options.
func ParseCondition(cond string) (core.Expr, error) {
	return New(core.DefaultOptions()).ParseCondition(cond)
}
