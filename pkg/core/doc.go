// Package core defines the shared language of the rowql system.
//
// This package contains:
//   - Data model (Value, Row, Table, Result)
//   - The parsed query (Query) and its boolean expression tree (Expr)
//   - Engine options (Options, Mode, Precedence)
//   - The error taxonomy shared by parser, evaluator and executor
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
