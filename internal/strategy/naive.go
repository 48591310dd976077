package strategy

import (
	"github.com/MohanLi/tickbench/internal/types"
)

// NaiveAverage recomputes the arithmetic mean over the entire price history
// on every tick.
//
// Let n be the number of ticks seen so far:
//   - Time per tick: O(n), the full history is summed again
//   - Total time over N ticks: O(N^2)
//   - Space: O(N), every price is kept
//
// Kept as the baseline the optimized strategies are measured against.
type NaiveAverage struct {
	prices []float64
}

var _ Strategy = (*NaiveAverage)(nil)

// NewNaiveAverage creates a naive full-history average strategy.
func NewNaiveAverage() *NaiveAverage {
	return &NaiveAverage{}
}

// Name returns the name of the strategy.
func (s *NaiveAverage) Name() string {
	return NaiveStrategyName
}

// Reset releases the accumulated price history.
func (s *NaiveAverage) Reset() {
	s.prices = nil
}

// GenerateSignals appends the tick price to the history and emits one signal
// against the mean of everything seen so far.
func (s *NaiveAverage) GenerateSignals(tick types.Tick) []types.Signal {
	s.prices = append(s.prices, tick.Price)

	// O(n): sum over every price seen so far
	sum := 0.0
	for _, price := range s.prices {
		sum += price
	}

	avg := sum / float64(len(s.prices))

	return []types.Signal{
		{
			Timestamp: tick.Timestamp,
			Symbol:    tick.Symbol,
			Action:    types.ActionFor(tick.Price, avg),
			Price:     tick.Price,
			Reference: avg,
		},
	}
}
