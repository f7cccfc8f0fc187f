package mds

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// EmbedAll embeds every matrix in ds independently, at most
// WithConcurrency(n) at a time (default GOMAXPROCS). Results are index
// aligned with ds. Each matrix gets its own fallback RNG stream derived from
// the configured seed, so seeded batches are reproducible regardless of
// scheduling. The first error (a malformed matrix or ctx cancellation)
// stops launching new work and is returned.
func EmbedAll(ctx context.Context, ds [][][]float64, opts ...Option) ([]*Result, error) {
	o := gatherOptions(opts...)
	return embedAll(ctx, ds, o.dims, o)
}

// ProjectAll is EmbedAll in two dimensions, returning Points.
func ProjectAll(ctx context.Context, ds [][][]float64, opts ...Option) ([][]Point, error) {
	o := gatherOptions(opts...)
	res, err := embedAll(ctx, ds, 2, o)
	if err != nil {
		return nil, err
	}
	out := make([][]Point, len(res))
	for i, r := range res {
		out[i] = r.Points()
	}
	return out, nil
}

func embedAll(ctx context.Context, ds [][][]float64, k int, o options) ([]*Result, error) {
	parent := batchParent(o)
	out := make([]*Result, len(ds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i := range ds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := o
			local.rng = rand.New(rand.NewSource(deriveSeed(parent, uint64(i))))
			res, err := embed(ds[i], k, local)
			if err != nil {
				return fmt.Errorf("matrix %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
