package core

// Wildcard is the "*" column specifier.
const Wildcard = "*"

// Query is a parsed SELECT statement.
type Query struct {
	// Columns is the projection list. A single Wildcard entry selects the
	// key set of the table's first row.
	Columns []string
	// Where is the raw WHERE text, empty when absent.
	Where string
	// Condition is the WHERE expression, nil when absent.
	Condition Expr
	// Limit is the LIMIT value, nil when absent. Zero means no limit.
	Limit *int
}

// IsWildcard reports whether the query selects every column.
func (q *Query) IsWildcard() bool {
	return len(q.Columns) == 1 && q.Columns[0] == Wildcard
}

// LimitValue returns the effective row limit; 0 means unlimited.
func (q *Query) LimitValue() int {
	if q.Limit == nil || *q.Limit < 0 {
		return 0
	}
	return *q.Limit
}

// Result is the output of a query: the resolved column list and the
// projected rows, in table order.
type Result struct {
	Columns []string
	Rows    []*Row
}

// Len returns the number of result rows.
func (r *Result) Len() int {
	return len(r.Rows)
}
