// internal/graph/parallel.go
package graph

import "github.com/exascience/pargo/parallel"

// forRange calls fn(i) for every i in [0,n). With Threads > 1 the range is
// split into batches run concurrently; fn must only touch state owned by i.
func (g *Graph) forRange(n int, fn func(i int)) {
	if g.Threads <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	batches := g.Threads
	if batches > n {
		batches = n
	}
	parallel.Range(0, n, batches, func(low, high int) {
		for i := low; i < high; i++ {
			fn(i)
		}
	})
}
