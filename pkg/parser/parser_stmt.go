package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/rowql/pkg/core"
)

// statementPattern matches a whole statement. The WHERE text is captured
// lazily so that a trailing LIMIT clause is not swallowed by it. Names
// may use letters and digits of any script.
var statementPattern = regexp.MustCompile(`(?is)^\s*SELECT\s+(?P<select>\*|[\p{L}\p{N}_\s,]+)\s+` +
	`FROM\s+(?P<table>[\p{L}\p{N}_]+)\s*` +
	`(?:WHERE\s+(?P<where>.+?)\s*)?` +
	`(?:LIMIT\s+(?P<limit>\d+))?\s*;\s*$`)

var (
	selectGroup = statementPattern.SubexpIndex("select")
	tableGroup  = statementPattern.SubexpIndex("table")
	whereGroup  = statementPattern.SubexpIndex("where")
	limitGroup  = statementPattern.SubexpIndex("limit")
)

// Parse parses a complete statement into a Query.
func (p *Parser) Parse(text string) (*core.Query, error) {
	if strings.TrimSpace(text) == "" {
		return nil, statementError(core.ErrMalformedStatement, ErrEmptyStatement)
	}

	m := statementPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, statementError(core.ErrMalformedStatement, ErrStatementShape)
	}
	group := func(i int) (string, bool) {
		if m[2*i] < 0 {
			return "", false
		}
		return text[m[2*i]:m[2*i+1]], true
	}

	table, _ := group(tableGroup)
	if !strings.EqualFold(table, p.opts.TableName) {
		return nil, statementError(core.ErrUnknownTable, ErrUnknownTableName, table, p.opts.TableName)
	}

	sel, _ := group(selectGroup)
	columns, err := p.parseColumns(sel)
	if err != nil {
		return nil, err
	}

	q := &core.Query{Columns: columns}

	if where, ok := group(whereGroup); ok {
		q.Where = strings.TrimSpace(where)
		cond, err := p.ParseCondition(q.Where)
		if err != nil {
			return nil, fmt.Errorf(ErrInvalidWhereClause, err)
		}
		q.Condition = cond
	}

	if lim, ok := group(limitGroup); ok {
		n, err := strconv.Atoi(lim)
		if err != nil {
			return nil, statementError(core.ErrMalformedStatement, ErrInvalidLimit, lim)
		}
		q.Limit = &n
	}

	return q, nil
}

// parseColumns splits the select list on commas and trims each name.
func (p *Parser) parseColumns(sel string) ([]string, error) {
	if strings.TrimSpace(sel) == core.Wildcard {
		return []string{core.Wildcard}, nil
	}

	parts := strings.Split(sel, ",")
	columns := make([]string, 0, len(parts))
	for _, part := range parts {
		col := strings.TrimSpace(part)
		if p.opts.Strict() {
			if col == "" {
				return nil, statementError(core.ErrMalformedStatement, ErrEmptyColumn)
			}
			if strings.ContainsAny(col, " \t\r\n\f\v") {
				return nil, statementError(core.ErrMalformedStatement, ErrColumnWhitespace, col)
			}
		}
		columns = append(columns, col)
	}
	return columns, nil
}
