package reference

import "golang.org/x/sync/errgroup"

// run calls fn(k) for k in [0, n), on up to workers goroutines. Each k must
// touch disjoint output.
func run(workers, n int, fn func(k int)) {
	if workers <= 1 || n < 2 {
		for k := 0; k < n; k++ {
			fn(k)
		}

		return
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for k := 0; k < n; k++ {
		g.Go(func() error {
			fn(k)
			return nil
		})
	}

	_ = g.Wait()
}
