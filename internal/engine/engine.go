// Package engine runs parsed queries against an in-memory table.
// It filters rows with the condition evaluator, resolves the projection
// list, projects and truncates the result.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/leapstack-labs/rowql/pkg/eval"
	"github.com/leapstack-labs/rowql/pkg/parser"
)

// DefaultParallelThreshold is the table size from which filtering is
// split across workers when Config.Workers is greater than one.
const DefaultParallelThreshold = 4096

// Engine parses and executes queries. It holds no per-query state, so
// one Engine may serve concurrent queries.
type Engine struct {
	opts      core.Options
	parser    *parser.Parser
	evaluator *eval.Evaluator

	workers           int
	parallelThreshold int

	// Structured logger
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Options selects mode, precedence and the placeholder table name.
	Options core.Options
	// Workers is the number of goroutines used to filter large tables.
	// Values below 2 filter sequentially.
	Workers int
	// ParallelThreshold is the minimum row count for parallel filtering
	// (DefaultParallelThreshold when zero).
	ParallelThreshold int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := cfg.Options.WithDefaults()
	threshold := cfg.ParallelThreshold
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}

	logger.Debug("initializing engine",
		"mode", opts.Mode, "precedence", opts.Precedence, "workers", cfg.Workers)

	return &Engine{
		opts:              opts,
		parser:            parser.New(opts),
		evaluator:         eval.New(opts),
		workers:           cfg.Workers,
		parallelThreshold: threshold,
		logger:            logger,
	}
}

// Options returns the engine's options.
func (e *Engine) Options() core.Options {
	return e.opts
}

// Parse parses a statement with the engine's options.
func (e *Engine) Parse(text string) (*core.Query, error) {
	return e.parser.Parse(text)
}

// Query parses text and executes it against table.
func (e *Engine) Query(ctx context.Context, table core.Table, text string) (*core.Result, error) {
	logger := e.logger.With("query_id", uuid.NewString())
	start := time.Now()

	q, err := e.parser.Parse(text)
	if err != nil {
		logger.DebugContext(ctx, "parse failed", "error", err)
		return nil, err
	}
	logger.DebugContext(ctx, "query parsed",
		"columns", q.Columns, "where", q.Where, "limit", q.LimitValue())

	res, err := e.execute(ctx, logger, table, q)
	if err != nil {
		logger.DebugContext(ctx, "execution failed", "error", err)
		return nil, err
	}

	logger.DebugContext(ctx, "query complete",
		"rows", res.Len(), "duration", time.Since(start))
	return res, nil
}

// Execute runs a parsed query against table.
func (e *Engine) Execute(ctx context.Context, table core.Table, q *core.Query) (*core.Result, error) {
	return e.execute(ctx, e.logger, table, q)
}

func (e *Engine) execute(ctx context.Context, logger *slog.Logger, table core.Table, q *core.Query) (*core.Result, error) {
	if q == nil {
		return nil, fmt.Errorf("nil query")
	}

	rows, err := e.filter(ctx, table, q.Condition)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "rows filtered", "total", len(table), "kept", len(rows))

	columns, err := resolveColumns(table, q)
	if err != nil {
		return nil, err
	}

	projected := make([]*core.Row, len(rows))
	for i, r := range rows {
		projected[i] = r.Project(columns)
	}

	// A zero limit means no limit.
	if n := q.LimitValue(); n > 0 && n < len(projected) {
		projected = projected[:n]
	}

	return &core.Result{Columns: columns, Rows: projected}, nil
}

// resolveColumns expands a wildcard to the key order of the first row of
// the unfiltered table.
func resolveColumns(table core.Table, q *core.Query) ([]string, error) {
	if !q.IsWildcard() {
		columns := make([]string, len(q.Columns))
		copy(columns, q.Columns)
		return columns, nil
	}
	if len(table) == 0 {
		return nil, core.NewExecutionError(core.ErrEmptyTable, "cannot resolve * on a table with no rows")
	}
	return table[0].Keys(), nil
}
