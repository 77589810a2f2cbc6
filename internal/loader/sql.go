package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/leapstack-labs/rowql/pkg/core"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver, registered as "pgx"
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	_ "modernc.org/sqlite"              // sqlite driver
)

// ErrNoSourceTable is returned when a database source has no table name.
var ErrNoSourceTable = errors.New("source_table is required for database sources")

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func loadDatabase(ctx context.Context, source string, format Format, table string, logger *slog.Logger) (core.Table, error) {
	if table == "" {
		return nil, ErrNoSourceTable
	}

	var driver, dsn string
	switch format {
	case FormatSQLite:
		if _, err := os.Stat(source); err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		driver, dsn = "sqlite", source+"?mode=ro"
	case FormatDuckDB:
		if _, err := os.Stat(source); err != nil {
			return nil, fmt.Errorf("failed to open duckdb database: %w", err)
		}
		driver, dsn = "duckdb", source+"?access_mode=read_only"
	case FormatPostgres:
		driver, dsn = "pgx", source
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, format)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", format, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", format, err)
	}

	logger.Debug("reading database table", "driver", driver, "table", table)
	return FromDB(ctx, db, table)
}

// FromDB reads every row of table from db.
func FromDB(ctx context.Context, db *sql.DB, table string) (core.Table, error) {
	ident, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+ident) //nolint:gosec // identifier is validated and quoted
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	return scanRows(rows)
}

func scanRows(rows *sql.Rows) (core.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	table := core.Table{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := core.NewRow(len(columns))
		for i, col := range columns {
			v, err := normalizeCell(values[i])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col, err)
			}
			row.Set(col, v)
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return table, nil
}

// normalizeCell is core.NormalizeValue plus text forms for driver values
// that have no scalar equivalent, such as timestamps and decimals.
func normalizeCell(v any) (core.Value, error) {
	if nv, err := core.NormalizeValue(v); err == nil {
		return nv, nil
	}
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

func quoteIdent(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("invalid source table name %q", name)
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, "."), nil
}
