// Package tickbench is the public embedding API for the benchmark engine.
// It wraps the internal strategy registry, benchmark runner, and reporter
// behind a flat surface, so programs can evaluate strategies and measure
// them without importing internal packages.
package tickbench

import (
	"context"

	"github.com/MohanLi/tickbench/internal/bench"
	"github.com/MohanLi/tickbench/internal/datasource"
	"github.com/MohanLi/tickbench/internal/logger"
	"github.com/MohanLi/tickbench/internal/report"
	"github.com/MohanLi/tickbench/internal/strategy"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/moznion/go-optional"
)

// Core types, re-exported for callers outside the module.
type (
	Tick            = types.Tick
	Signal          = types.Signal
	Action          = types.Action
	BenchmarkResult = types.BenchmarkResult
	Strategy        = strategy.Strategy
)

// Signal actions.
const (
	ActionBuy  = types.ActionBuy
	ActionSell = types.ActionSell
	ActionHold = types.ActionHold
)

// Engine holds a strategy registry and runs evaluations and benchmarks
// against it.
type Engine struct {
	registry strategy.Registry
	log      *logger.Logger
}

// NewEngine creates an engine with the built-in strategies registered. The
// windowed strategy uses windowSize.
func NewEngine(windowSize int) (*Engine, error) {
	registry, err := strategy.NewDefaultRegistry(windowSize)
	if err != nil {
		return nil, err
	}

	return &Engine{
		registry: registry,
		log:      logger.NewSilentLogger(),
	}, nil
}

// RegisterStrategy adds a custom strategy to the engine.
func (e *Engine) RegisterStrategy(s Strategy) error {
	return e.registry.Register(s)
}

// Strategies returns the registered strategy names in sorted order.
func (e *Engine) Strategies() []string {
	return e.registry.List()
}

// LoadCSV reads a tick dataset from a timestamp,symbol,price CSV file.
func (e *Engine) LoadCSV(ctx context.Context, path string) ([]Tick, error) {
	source := datasource.NewCSVSource(path, e.log)
	defer func() {
		_ = source.Close()
	}()

	return source.Load(ctx)
}

// Evaluate resets the named strategy and replays the ticks through it,
// returning every emitted signal.
func (e *Engine) Evaluate(name string, ticks []Tick) ([]Signal, error) {
	s, err := e.registry.Get(name)
	if err != nil {
		return nil, err
	}

	s.Reset()

	signals := make([]Signal, 0, len(ticks))
	for _, tick := range ticks {
		signals = append(signals, s.GenerateSignals(tick)...)
	}

	return signals, nil
}

// Benchmark measures every registered strategy across the given input sizes,
// keeping the fastest of repeats timed runs per cell.
func (e *Engine) Benchmark(ctx context.Context, ticks []Tick, sizes []int, repeats int) ([]BenchmarkResult, error) {
	names := e.registry.List()

	strategies := make([]strategy.Strategy, 0, len(names))
	for _, name := range names {
		s, err := e.registry.Get(name)
		if err != nil {
			return nil, err
		}

		strategies = append(strategies, s)
	}

	opts := bench.Options{
		Sizes:         sizes,
		Repeats:       repeats,
		ProfileOnSize: optional.None[int](),
		ShowProgress:  false,
	}

	return bench.NewRunner(strategies, ticks, opts, e.log).Run(ctx)
}

// WriteReport renders the markdown report and plots into dir and returns the
// report path.
func (e *Engine) WriteReport(results []BenchmarkResult, dir string) (string, error) {
	return report.NewReporter(e.log).WriteReport(results, dir)
}
