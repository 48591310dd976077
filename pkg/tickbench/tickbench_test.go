package tickbench

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MohanLi/tickbench/internal/datagen"
	"github.com/MohanLi/tickbench/internal/strategy"
	"github.com/MohanLi/tickbench/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// holdStrategy is a minimal custom strategy built only from facade types.
type holdStrategy struct {
	seen int
}

func (s *holdStrategy) Name() string { return "always_hold" }

func (s *holdStrategy) Reset() { s.seen = 0 }

func (s *holdStrategy) GenerateSignals(tick Tick) []Signal {
	s.seen++

	return []Signal{{
		Timestamp: tick.Timestamp,
		Symbol:    tick.Symbol,
		Action:    ActionHold,
		Price:     tick.Price,
		Reference: tick.Price,
	}}
}

func makeTicks(prices []float64) []Tick {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ticks := make([]Tick, 0, len(prices))
	for i, price := range prices {
		ticks = append(ticks, Tick{
			Timestamp: start.Add(time.Duration(i) * time.Second),
			Symbol:    "SIM",
			Price:     price,
		})
	}

	return ticks
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(strategy.DefaultWindowSize)
	require.NoError(t, err)

	assert.Equal(t, []string{
		strategy.CumulativeStrategyName,
		strategy.NaiveStrategyName,
		strategy.WindowedStrategyName,
	}, engine.Strategies())
}

func TestNewEngineRejectsNonPositiveWindow(t *testing.T) {
	_, err := NewEngine(0)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func TestRegisterStrategy(t *testing.T) {
	engine, err := NewEngine(strategy.DefaultWindowSize)
	require.NoError(t, err)

	require.NoError(t, engine.RegisterStrategy(&holdStrategy{}))
	assert.Contains(t, engine.Strategies(), "always_hold")

	err = engine.RegisterStrategy(&holdStrategy{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStrategyAlreadyExists))
}

func TestEvaluate(t *testing.T) {
	engine, err := NewEngine(strategy.DefaultWindowSize)
	require.NoError(t, err)

	signals, err := engine.Evaluate(strategy.CumulativeStrategyName, makeTicks([]float64{10, 12, 11}))
	require.NoError(t, err)
	require.Len(t, signals, 3)

	assert.Equal(t, ActionHold, signals[0].Action)
	assert.Equal(t, ActionBuy, signals[1].Action)
	assert.Equal(t, ActionHold, signals[2].Action)
}

func TestEvaluateUnknownStrategy(t *testing.T) {
	engine, err := NewEngine(strategy.DefaultWindowSize)
	require.NoError(t, err)

	_, err = engine.Evaluate("momentum", makeTicks([]float64{10}))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func TestEvaluateCustomStrategy(t *testing.T) {
	engine, err := NewEngine(strategy.DefaultWindowSize)
	require.NoError(t, err)
	require.NoError(t, engine.RegisterStrategy(&holdStrategy{}))

	signals, err := engine.Evaluate("always_hold", makeTicks([]float64{10, 12, 11}))
	require.NoError(t, err)
	require.Len(t, signals, 3)

	for _, signal := range signals {
		assert.Equal(t, ActionHold, signal.Action)
	}
}

func TestBenchmark(t *testing.T) {
	engine, err := NewEngine(strategy.DefaultWindowSize)
	require.NoError(t, err)

	config := datagen.DefaultConfig()
	config.Count = 200
	ticks := datagen.GenerateCycling(config)

	results, err := engine.Benchmark(context.Background(), ticks, []int{50, 200}, 1)
	require.NoError(t, err)
	require.Len(t, results, 6)

	for _, result := range results {
		assert.Equal(t, result.Size, result.SignalCount)
	}
}

func TestWriteReport(t *testing.T) {
	engine, err := NewEngine(strategy.DefaultWindowSize)
	require.NoError(t, err)

	config := datagen.DefaultConfig()
	config.Count = 100
	ticks := datagen.GenerateCycling(config)

	results, err := engine.Benchmark(context.Background(), ticks, []int{100}, 1)
	require.NoError(t, err)

	dir := t.TempDir()

	reportPath, err := engine.WriteReport(results, dir)
	require.NoError(t, err)
	assert.FileExists(t, reportPath)
}

func TestLoadCSV(t *testing.T) {
	config := datagen.DefaultConfig()
	config.Count = 25
	ticks := datagen.GenerateCycling(config)

	path := filepath.Join(t.TempDir(), "ticks.csv")
	require.NoError(t, datagen.WriteCSV(path, ticks))

	engine, err := NewEngine(strategy.DefaultWindowSize)
	require.NoError(t, err)

	loaded, err := engine.LoadCSV(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, loaded, 25)
	assert.Equal(t, ticks[0].Symbol, loaded[0].Symbol)
	assert.InDelta(t, ticks[0].Price, loaded[0].Price, 1e-6)
}
