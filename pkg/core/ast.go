package core

import (
	"fmt"

	"github.com/leapstack-labs/rowql/pkg/token"
)

// Expr is a boolean-valued condition node. The set of implementations is
// closed: *Literal, *Comparison and *Logical. Trees are immutable once built.
type Expr interface {
	fmt.Stringer
	exprNode() // Marker method to distinguish expressions
}

// Literal is a constant boolean.
type Literal struct {
	Value bool
}

func (*Literal) exprNode() {}

func (l *Literal) String() string {
	if l.Value {
		return "TRUE"
	}
	return "FALSE"
}

// Operand is the unresolved text of one side of a comparison. It names a
// column when it matches a key of the row being evaluated, and is a
// literal otherwise.
type Operand string

// Comparison compares two operands.
type Comparison struct {
	Left  Operand
	Op    token.ComparisonOp
	Right Operand
}

func (*Comparison) exprNode() {}

func (c *Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

// Logical joins two expressions with AND or OR.
type Logical struct {
	Left  Expr
	Op    token.LogicalOp
	Right Expr
}

func (*Logical) exprNode() {}

func (l *Logical) String() string {
	return fmt.Sprintf("(%v %s %v)", l.Left, l.Op, l.Right)
}

// Convenience constructors, mostly useful when building trees by hand.

// True returns a Literal(true) node.
func True() *Literal { return &Literal{Value: true} }

// False returns a Literal(false) node.
func False() *Literal { return &Literal{Value: false} }

// Compare returns a Comparison node.
func Compare(left string, op token.ComparisonOp, right string) *Comparison {
	return &Comparison{Left: Operand(left), Op: op, Right: Operand(right)}
}

// And returns a Logical AND node.
func And(left, right Expr) *Logical {
	return &Logical{Left: left, Op: token.OpAnd, Right: right}
}

// Or returns a Logical OR node.
func Or(left, right Expr) *Logical {
	return &Logical{Left: left, Op: token.OpOr, Right: right}
}
