package core

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; the typed wrappers below tell
// which stage failed.
var (
	// ErrMalformedStatement means the text is not a SELECT ... ; statement.
	ErrMalformedStatement = errors.New("malformed statement")
	// ErrUnknownTable means FROM named something other than the loaded table.
	ErrUnknownTable = errors.New("unknown table")
	// ErrInvalidCondition means a WHERE fragment could not be parsed (strict mode).
	ErrInvalidCondition = errors.New("invalid condition")
	// ErrTypeMismatch means < or > was applied to values of different kinds.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrMalformedExpression means an expression node has an unexpected shape (strict mode).
	ErrMalformedExpression = errors.New("malformed expression")
	// ErrEmptyTable means a wildcard projection was requested on an empty table.
	ErrEmptyTable = errors.New("empty table")
)

// ParseError is returned by the statement and condition parsers.
type ParseError struct {
	Kind    error
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v: %s", e.Kind, e.Message)
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error { return e.Kind }

// NewParseError creates a ParseError of the given kind.
func NewParseError(kind error, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// EvaluationError is returned when a condition cannot be evaluated against a row.
type EvaluationError struct {
	Kind    error
	Message string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error: %v: %s", e.Kind, e.Message)
}

// Unwrap returns the error kind.
func (e *EvaluationError) Unwrap() error { return e.Kind }

// NewEvaluationError creates an EvaluationError of the given kind.
func NewEvaluationError(kind error, format string, args ...any) *EvaluationError {
	return &EvaluationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ExecutionError is returned by the query executor.
type ExecutionError struct {
	Kind    error
	Message string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution error: %v: %s", e.Kind, e.Message)
}

// Unwrap returns the error kind.
func (e *ExecutionError) Unwrap() error { return e.Kind }

// NewExecutionError creates an ExecutionError of the given kind.
func NewExecutionError(kind error, format string, args ...any) *ExecutionError {
	return &ExecutionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
