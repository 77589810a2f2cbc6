package engine

import (
	"context"

	"github.com/leapstack-labs/rowql/pkg/core"
	"golang.org/x/sync/errgroup"
)

// filter returns the rows of table satisfying cond, in table order. A nil
// condition keeps every row.
func (e *Engine) filter(ctx context.Context, table core.Table, cond core.Expr) ([]*core.Row, error) {
	if cond == nil {
		out := make([]*core.Row, len(table))
		copy(out, table)
		return out, nil
	}
	if e.workers > 1 && len(table) >= e.parallelThreshold {
		return e.filterParallel(ctx, table, cond)
	}

	var out []*core.Row
	for _, r := range table {
		ok, err := e.evaluator.Evaluate(r, cond)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// filterParallel evaluates contiguous chunks of table concurrently. Each
// chunk stops at its own first error, so the error reported is the one
// for the earliest failing row, as in a sequential scan.
func (e *Engine) filterParallel(ctx context.Context, table core.Table, cond core.Expr) ([]*core.Row, error) {
	keep := make([]bool, len(table))
	chunkSize := (len(table) + e.workers - 1) / e.workers
	chunks := (len(table) + chunkSize - 1) / chunkSize
	errs := make([]error, chunks)

	e.logger.DebugContext(ctx, "filtering in parallel", "rows", len(table), "chunks", chunks)

	var g errgroup.Group
	g.SetLimit(e.workers)
	for c := 0; c < chunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, len(table))
		g.Go(func() error {
			for i := start; i < end; i++ {
				ok, err := e.evaluator.Evaluate(table[i], cond)
				if err != nil {
					errs[c] = err
					return err
				}
				keep[i] = ok
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, chunkErr := range errs {
			if chunkErr != nil {
				return nil, chunkErr
			}
		}
		return nil, err
	}

	var out []*core.Row
	for i, ok := range keep {
		if ok {
			out = append(out, table[i])
		}
	}
	return out, nil
}
