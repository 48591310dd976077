package strategy

import (
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/MohanLi/tickbench/pkg/errors"
)

// DefaultWindowSize is the window applied when a run does not configure one.
const DefaultWindowSize = 50

// WindowedAverage averages the most recent windowSize prices. The window is
// a fixed-capacity ring buffer paired with a running sum, so eviction and
// the mean both cost constant time.
//
// Let k be the window size:
//   - Time per tick: O(1) amortized
//   - Space: O(k)
//
// While fewer than k ticks have been seen, the mean divides by the actual
// number of prices held, not by k.
type WindowedAverage struct {
	windowSize int
	window     []float64
	oldest     int
	sum        float64
}

var _ Strategy = (*WindowedAverage)(nil)

// NewWindowedAverage creates a sliding-window average strategy over the last
// windowSize prices. The window size must be positive.
func NewWindowedAverage(windowSize int) (*WindowedAverage, error) {
	if windowSize <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "window size must be positive, got %d", windowSize)
	}

	return &WindowedAverage{
		windowSize: windowSize,
	}, nil
}

// Name returns the name of the strategy.
func (s *WindowedAverage) Name() string {
	return WindowedStrategyName
}

// Reset releases the window buffer and zeroes the running sum.
func (s *WindowedAverage) Reset() {
	s.window = nil
	s.oldest = 0
	s.sum = 0.0
}

// GenerateSignals pushes the tick price into the window, evicts the oldest
// price once the window is full, and emits one signal against the window
// mean.
func (s *WindowedAverage) GenerateSignals(tick types.Tick) []types.Signal {
	if s.window == nil {
		s.window = make([]float64, 0, s.windowSize)
	}

	if len(s.window) < s.windowSize {
		s.window = append(s.window, tick.Price)
	} else {
		// Full window: the oldest slot holds the price falling out
		s.sum -= s.window[s.oldest]
		s.window[s.oldest] = tick.Price
		s.oldest = (s.oldest + 1) % s.windowSize
	}

	s.sum += tick.Price

	avg := s.sum / float64(len(s.window))

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

// WindowLen reports how many prices the window currently holds. Never
// exceeds the configured window size.
func (s *WindowedAverage) WindowLen() int {
	return len(s.window)
}
