package strategy

import (
	"github.com/MohanLi/tickbench/internal/types"
)

// CumulativeAverage is the optimized refactor of NaiveAverage. It maintains
// a running sum and count instead of re-summing the history, so the emitted
// action sequence matches NaiveAverage on any input while the cost drops to:
//   - Time per tick: O(1)
//   - Total time over N ticks: O(N)
//   - Space: O(1), only the sum and count survive between ticks
type CumulativeAverage struct {
	sum   float64
	count int
}

var _ Strategy = (*CumulativeAverage)(nil)

// NewCumulativeAverage creates a cumulative running-average strategy.
func NewCumulativeAverage() *CumulativeAverage {
	return &CumulativeAverage{}
}

// Name returns the name of the strategy.
func (s *CumulativeAverage) Name() string {
	return CumulativeStrategyName
}

// Reset zeroes the running sum and count.
func (s *CumulativeAverage) Reset() {
	s.sum = 0.0
	s.count = 0
}

// GenerateSignals folds the tick price into the running sum and emits one
// signal against the cumulative mean.
func (s *CumulativeAverage) GenerateSignals(tick types.Tick) []types.Signal {
	s.sum += tick.Price
	s.count++

	avg := s.sum / float64(s.count)

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
