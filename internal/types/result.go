package types

import "time"

// BenchmarkResult is one measured (strategy, size) cell of a benchmark run.
type BenchmarkResult struct {
	// RunID groups results measured in the same invocation
	RunID string
	// Strategy is the name the strategy reports
	Strategy string
	// Size is the number of ticks fed during the run
	Size int
	// Repeats is how many times the run was timed
	Repeats int
	// BestRuntime is the fastest wall time across repeats
	BestRuntime time.Duration
	// HeapGrowthBytes is the heap growth the run left behind after a forced
	// collection, attributable to strategy state
	HeapGrowthBytes uint64
	// SignalCount is the number of signals the strategy emitted
	SignalCount int
	// CreatedAt is when the measurement finished
	CreatedAt time.Time
}
