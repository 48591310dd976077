// Package strategy implements moving-average signal strategies with
// deliberately different complexity classes, plus the registry that
// benchmark runs resolve them from.
package strategy

import (
	"github.com/MohanLi/tickbench/internal/types"
)

// Strategy consumes ticks one at a time and emits the signals produced by
// each tick. Implementations own mutable internal state and must not be
// shared across goroutines without external synchronization.
type Strategy interface {
	// GenerateSignals processes a single tick, updates internal state, and
	// returns the signals the tick produced. Every strategy in this package
	// returns exactly one signal per tick. Ticks are assumed to arrive in
	// non-decreasing timestamp order; ordering is not enforced.
	GenerateSignals(tick types.Tick) []types.Signal

	// Reset restores the initial empty state. Idempotent and safe to call
	// before the first tick. A reset instance behaves like a new one.
	Reset()

	// Name returns a stable identifier used for registry lookup, reporting,
	// and profile file names.
	Name() string
}

// Names of the built-in strategies.
const (
	NaiveStrategyName      = "naive_moving_average"
	CumulativeStrategyName = "cumulative_average"
	WindowedStrategyName   = "windowed_moving_average"
)
