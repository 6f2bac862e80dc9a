package embednet

import "runtime"

// Options configures the pairwise pipelines.
type Options struct {
	// Workers is the number of rows computed concurrently. Zero uses
	// GOMAXPROCS.
	Workers int

	// Order fixes the index of every word.
	Order Order

	ZeroVectors ZeroPolicy

	// Progress receives the number of evaluated pairs. May be nil.
	Progress *Progress
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}

	return runtime.GOMAXPROCS(0)
}
