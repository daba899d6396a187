package chunked

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/pkg/errors"
)

// ForEach forces every block of the array, running fn once per block on a
// bounded worker pool. Blocks are independent tasks: no ordering is
// guaranteed between them. The first failing block cancels the remaining
// work and its error is returned (fail-fast). Panics inside producers or fn
// surface as errors rather than killing the process.
//
// workers <= 0 selects one worker per CPU.
func (a *Array) ForEach(ctx context.Context, workers int, fn func(block, lo int, m *mat.Dense) error) error {
	if fn == nil {
		return errors.NewConfigError("fn", "block consumer is required", nil)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for b := 0; b < a.NumBlocks(); b++ {
		g.Go(func() (err error) {
			defer errors.Recover(&err, "chunked.ForEach")

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			m, err := a.Block(b)
			if err != nil {
				return err
			}
			lo, _ := a.BlockBounds(b)
			return fn(b, lo, m)
		})
	}

	return g.Wait()
}

// Materialize forces every block and assembles the full dense matrix.
// This is the hand-off point to consumers that need the whole array in
// memory, such as a model fit.
func (a *Array) Materialize(ctx context.Context) (*mat.Dense, error) {
	out := mat.NewDense(a.rows, a.cols, nil)

	// Each block writes a disjoint row range, so concurrent copies are safe.
	err := a.ForEach(ctx, 0, func(_, lo int, m *mat.Dense) error {
		r, _ := m.Dims()
		out.Slice(lo, lo+r, 0, a.cols).(*mat.Dense).Copy(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
