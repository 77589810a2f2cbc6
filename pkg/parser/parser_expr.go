package parser

import (
	"strings"

	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/leapstack-labs/rowql/pkg/token"
)

// Condition grammar:
//
//	condition  → item { (AND | OR) item }
//	item       → "(" condition ")" | comparison | literal
//	comparison → operand ("!=" | "=" | "<" | ">") operand
//
// Parsing is a single left-to-right pass that pushes one stack entry per
// item or keyword; parenthesized groups are parsed recursively and pushed
// as a single entry. The finished stack is folded into Logical nodes
// according to Options.Precedence. In permissive mode a malformed stack
// keeps its well-formed head and only the broken tail becomes FALSE.

// stackEntry is either an expression or a logical operator marker.
type stackEntry struct {
	expr core.Expr
	op   token.LogicalOp
	tok  token.Token
}

func (e stackEntry) isOp() bool { return e.expr == nil }

// ParseCondition tokenizes and parses WHERE-condition text.
func (p *Parser) ParseCondition(cond string) (core.Expr, error) {
	tokens := Tokenize(cond)
	return p.parseTokens(tokens, token.Position{Offset: len(cond)})
}

// parseTokens parses one token sequence. end is the position just after
// the sequence, used in error messages.
func (p *Parser) parseTokens(tokens []token.Token, end token.Position) (core.Expr, error) {
	var stack []stackEntry

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok.Type {
		case token.LPAREN:
			closeIdx := matchingParen(tokens, i)
			subEnd := end
			if closeIdx < 0 {
				if p.opts.Strict() {
					return nil, conditionError(tok.Pos, ErrUnclosedParen)
				}
				closeIdx = len(tokens)
			} else {
				subEnd = tokens[closeIdx].Pos
			}
			sub, err := p.parseTokens(tokens[i+1:closeIdx], subEnd)
			if err != nil {
				return nil, err
			}
			stack = append(stack, stackEntry{expr: sub, tok: tok})
			i = closeIdx

		case token.RPAREN:
			if p.opts.Strict() {
				return nil, conditionError(tok.Pos, ErrUnexpectedParen)
			}
			stack = append(stack, stackEntry{expr: core.False(), tok: tok})

		case token.AND, token.OR:
			op, _ := token.LogicalOpFor(tok.Type)
			stack = append(stack, stackEntry{op: op, tok: tok})

		default:
			expr, err := p.parseFragment(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, stackEntry{expr: expr, tok: tok})
		}
	}

	return p.fold(stack, end)
}

// matchingParen returns the index of the ")" closing the "(" at open, or -1.
func matchingParen(tokens []token.Token, open int) int {
	depth := 0
	for j := open; j < len(tokens); j++ {
		switch tokens[j].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// parseFragment turns a FRAGMENT token into a Comparison or a Literal.
func (p *Parser) parseFragment(tok token.Token) (core.Expr, error) {
	text := tok.Literal

	if idx, op := findComparisonOp(text); idx >= 0 {
		left := trimOperand(text[:idx])
		right := trimOperand(text[idx+len(op):])
		if p.opts.Strict() && (left == "" || right == "") {
			return nil, conditionError(tok.Pos, ErrMissingOperand, text)
		}
		return &core.Comparison{Left: core.Operand(left), Op: op, Right: core.Operand(right)}, nil
	}

	switch {
	case strings.EqualFold(text, "true"):
		return core.True(), nil
	case strings.EqualFold(text, "false"):
		return core.False(), nil
	case p.opts.Strict():
		return nil, conditionError(tok.Pos, ErrUnrecognizedFragment, text)
	case isDigits(text):
		return core.True(), nil
	default:
		return core.False(), nil
	}
}

// findComparisonOp returns the byte index and operator of the leftmost
// comparison operator in s, or -1. At equal positions the operator listed
// first in token.ComparisonOps wins.
func findComparisonOp(s string) (int, token.ComparisonOp) {
	best, bestOp := -1, token.ComparisonOp("")
	for _, op := range token.ComparisonOps {
		if idx := strings.Index(s, string(op)); idx >= 0 && (best < 0 || idx < best) {
			best, bestOp = idx, op
		}
	}
	return best, bestOp
}

// trimOperand strips whitespace, then any surrounding quote characters.
func trimOperand(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}

// fold reduces the parse stack to a single expression.
func (p *Parser) fold(stack []stackEntry, end token.Position) (core.Expr, error) {
	if err := p.checkShape(stack, end); err != nil {
		if p.opts.Strict() {
			return nil, err
		}
		stack = salvage(stack)
	}

	if p.opts.Precedence == core.PrecedenceStandard {
		return foldStandard(stack), nil
	}
	return foldLeft(stack), nil
}

// checkShape verifies the stack alternates expression, operator, expression.
func (p *Parser) checkShape(stack []stackEntry, end token.Position) error {
	if len(stack) == 0 {
		return conditionError(end, ErrEmptyCondition)
	}
	for i, e := range stack {
		wantExpr := i%2 == 0
		switch {
		case wantExpr && e.isOp():
			return conditionError(e.tok.Pos, ErrExpectedCondition, e.tok.Literal)
		case !wantExpr && !e.isOp():
			return conditionError(e.tok.Pos, ErrExpectedOperator, e.tok.Literal)
		}
	}
	if stack[len(stack)-1].isOp() {
		return conditionError(end, ErrTrailingOperator, stack[len(stack)-1].op)
	}
	return nil
}

// salvage rewrites a malformed stack into an alternating one by walking
// it as head, operator, rest. The walk continues while the rest starts
// with an item followed by an operator; a rest of one item is kept, and
// any other rest becomes FALSE. An operator in item position is FALSE.
// A stack with no leading item-operator pair is FALSE as a whole.
func salvage(stack []stackEntry) []stackEntry {
	item := func(e stackEntry) stackEntry {
		if e.isOp() {
			return stackEntry{expr: core.False(), tok: e.tok}
		}
		return e
	}

	var out []stackEntry
	for rest := stack; ; rest = rest[2:] {
		switch {
		case len(rest) == 1:
			return append(out, item(rest[0]))
		case len(rest) > 2 && rest[1].isOp():
			out = append(out, item(rest[0]), rest[1])
		default:
			return append(out, stackEntry{expr: core.False()})
		}
	}
}

// foldLeft combines a well-formed stack strictly left to right:
// a OR b AND c is (a OR b) AND c.
func foldLeft(stack []stackEntry) core.Expr {
	acc := stack[0].expr
	for i := 1; i+1 < len(stack); i += 2 {
		acc = &core.Logical{Left: acc, Op: stack[i].op, Right: stack[i+1].expr}
	}
	return acc
}

// foldStandard binds AND tighter than OR: a OR b AND c is a OR (b AND c).
func foldStandard(stack []stackEntry) core.Expr {
	var or core.Expr
	and := stack[0].expr
	for i := 1; i+1 < len(stack); i += 2 {
		next := stack[i+1].expr
		if stack[i].op == token.OpAnd {
			and = core.And(and, next)
			continue
		}
		if or == nil {
			or = and
		} else {
			or = core.Or(or, and)
		}
		and = next
	}
	if or == nil {
		return and
	}
	return core.Or(or, and)
}
