package parser

import (
	"fmt"

	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/leapstack-labs/rowql/pkg/token"
)

// Common error messages
const (
	ErrEmptyStatement     = "empty statement"
	ErrStatementShape     = "expected SELECT <columns> FROM <table> [WHERE <condition>] [LIMIT <n>];"
	ErrEmptyColumn        = "empty column name in select list"
	ErrColumnWhitespace   = "column %q contains whitespace (missing comma?)"
	ErrInvalidLimit       = "invalid LIMIT %q"
	ErrUnknownTableName   = "unknown table %q (the loaded table is %s)"
	ErrInvalidWhereClause = "invalid WHERE clause: %w"

	ErrEmptyCondition       = "empty condition"
	ErrUnclosedParen        = "unclosed parenthesis"
	ErrUnexpectedParen      = "unexpected )"
	ErrMissingOperand       = "comparison %q is missing an operand"
	ErrUnrecognizedFragment = "unrecognized condition %q"
	ErrExpectedCondition    = "expected a condition, got %s"
	ErrExpectedOperator     = "expected AND or OR before %q"
	ErrTrailingOperator     = "condition ends with %s"
)

func conditionError(pos token.Position, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return core.NewParseError(core.ErrInvalidCondition, "%s at offset %d", msg, pos.Offset)
}

func statementError(kind error, format string, args ...any) error {
	return core.NewParseError(kind, format, args...)
}
