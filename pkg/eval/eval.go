// Package eval evaluates condition trees against rows.
//
// Evaluation is a pure function of (row, expression): nothing is mutated,
// so rows may be evaluated concurrently against a shared tree.
package eval

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/leapstack-labs/rowql/pkg/token"
)

// Evaluator evaluates expressions under a fixed mode.
type Evaluator struct {
	strict bool
}

// New creates an evaluator for the given options.
func New(opts core.Options) *Evaluator {
	return &Evaluator{strict: opts.WithDefaults().Strict()}
}

// Evaluate evaluates expr against row with default (strict) options.
func Evaluate(row *core.Row, expr core.Expr) (bool, error) {
	return New(core.DefaultOptions()).Evaluate(row, expr)
}

// Evaluate returns whether row satisfies expr.
//
// Both sides of a Logical node are always evaluated. A node of
// unexpected shape is an ErrMalformedExpression in strict mode and false
// in permissive mode. Ordering values of different kinds is always an
// ErrTypeMismatch.
func (e *Evaluator) Evaluate(row *core.Row, expr core.Expr) (bool, error) {
	switch n := expr.(type) {
	case *core.Literal:
		if n == nil {
			return e.malformed("nil literal")
		}
		return n.Value, nil

	case *core.Logical:
		if n == nil || n.Left == nil || n.Right == nil {
			return e.malformed("logical node is missing a side")
		}
		left, err := e.Evaluate(row, n.Left)
		if err != nil {
			return false, err
		}
		right, err := e.Evaluate(row, n.Right)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case token.OpAnd:
			return left && right, nil
		case token.OpOr:
			return left || right, nil
		}
		return e.malformed(fmt.Sprintf("unknown logical operator %q", n.Op))

	case *core.Comparison:
		if n == nil {
			return e.malformed("nil comparison")
		}
		if !n.Op.Valid() {
			return e.malformed(fmt.Sprintf("unknown comparison operator %q", n.Op))
		}
		return Compare(Resolve(row, n.Left), n.Op, Resolve(row, n.Right))

	default:
		return e.malformed(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (e *Evaluator) malformed(msg string) (bool, error) {
	if e.strict {
		return false, core.NewEvaluationError(core.ErrMalformedExpression, "%s", msg)
	}
	return false, nil
}

// Resolve turns an operand into a value for row: the row's value when the
// operand names one of its columns, a number when it is all decimal
// digits, and the operand text otherwise.
func Resolve(row *core.Row, op core.Operand) core.Value {
	s := string(op)
	if v, ok := row.Get(s); ok {
		return v
	}
	if isDigits(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// Compare applies op to two resolved values. = and != compare by value
// across kinds (values of different kinds are unequal). < and > require
// both values to be numbers or both strings.
func Compare(left core.Value, op token.ComparisonOp, right core.Value) (bool, error) {
	left, right = normalize(left), normalize(right)
	switch op {
	case token.EQ:
		return equal(left, right), nil
	case token.NE:
		return !equal(left, right), nil
	case token.LT, token.GT:
		c, err := order(left, right)
		if err != nil {
			return false, err
		}
		if op == token.LT {
			return c < 0, nil
		}
		return c > 0, nil
	}
	return false, core.NewEvaluationError(core.ErrMalformedExpression, "unknown comparison operator %q", op)
}

// normalize brings any Go numeric kind to float64 so that values from
// rows built outside Row.Set still compare as numbers.
func normalize(v core.Value) core.Value {
	if nv, err := core.NormalizeValue(v); err == nil {
		return nv
	}
	return v
}

func equal(a, b core.Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return false
}

// order returns -1, 0 or 1, or an ErrTypeMismatch.
func order(a, b core.Value) (int, error) {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return cmp3(x < y, x > y), nil
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp3(x < y, x > y), nil
		}
	}
	return 0, core.NewEvaluationError(core.ErrTypeMismatch,
		"cannot order %s %v and %s %v", kindOf(a), a, kindOf(b), b)
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

func kindOf(v core.Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
