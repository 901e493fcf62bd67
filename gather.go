package relgen

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FetchAll fetches the rows of ids concurrently and returns the present ones
// in the order of ids. Absent rows are dropped. The first error cancels the
// context of the pending fetches and is returned.
func FetchAll[I any, V any](ctx context.Context, ids []I, fetch func(context.Context, I) (V, bool, error)) ([]V, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	type result struct {
		v  V
		ok bool
	}
	results := make([]result, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			v, ok, err := fetch(ctx, id)
			if err != nil {
				return err
			}
			results[i] = result{v: v, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	vs := make([]V, 0, len(ids))
	for _, r := range results {
		if r.ok {
			vs = append(vs, r.v)
		}
	}
	return vs, nil
}
