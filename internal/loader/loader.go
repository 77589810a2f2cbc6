// Package loader reads a table of rows from a file or database.
//
// Supported sources, chosen by extension or DSN scheme:
//
//	.json                    array of flat objects
//	.yaml, .yml              sequence of flat mappings
//	.csv                     header row plus records
//	.db, .sqlite, .sqlite3   SQLite database (Options.SourceTable)
//	.duckdb                  DuckDB database (Options.SourceTable)
//	postgres://, postgresql://  PostgreSQL (Options.SourceTable)
//
// Row key order follows the source: object key order for JSON and YAML,
// header order for CSV, and result column order for databases.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/rowql/pkg/core"
)

// ErrUnsupportedSource is returned for a source whose format is unknown.
var ErrUnsupportedSource = errors.New("unsupported table source")

// Options configures Load.
type Options struct {
	// SourceTable names the table to read from a database source.
	SourceTable string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Format identifies a source format.
type Format string

// Source formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatSQLite   Format = "sqlite"
	FormatDuckDB   Format = "duckdb"
	FormatPostgres Format = "postgres"
)

// DetectFormat returns the format of source.
func DetectFormat(source string) (Format, error) {
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return FormatPostgres, nil
	}
	switch filepath.Ext(lower) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".duckdb":
		return FormatDuckDB, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
}

// IsFile reports whether the format reads from a local file.
func (f Format) IsFile() bool {
	return f != FormatPostgres
}

// Load reads the table at source.
func Load(ctx context.Context, source string, opts Options) (core.Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	format, err := DetectFormat(source)
	if err != nil {
		return nil, err
	}

	var table core.Table
	switch format {
	case FormatJSON, FormatYAML, FormatCSV:
		table, err = loadFile(source, format)
	default:
		table, err = loadDatabase(ctx, source, format, opts.SourceTable, logger)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("table loaded", "source", redactDSN(source), "format", format, "rows", len(table))
	return table, nil
}

func loadFile(path string, format Format) (core.Table, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var table core.Table
	switch format {
	case FormatJSON:
		table, err = DecodeJSON(f)
	case FormatYAML:
		table, err = DecodeYAML(f)
	case FormatCSV:
		table, err = DecodeCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return table, nil
}

// redactDSN hides the password of a database URL for logging.
func redactDSN(source string) string {
	at := strings.LastIndex(source, "@")
	scheme := strings.Index(source, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return source
	}
	userinfo := source[scheme+3 : at]
	if colon := strings.Index(userinfo, ":"); colon >= 0 {
		return source[:scheme+3] + userinfo[:colon] + ":***" + source[at:]
	}
	return source
}
