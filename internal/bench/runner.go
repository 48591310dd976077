// Package bench measures strategy runtime and memory growth across input sizes.
package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/MohanLi/tickbench/internal/logger"
	"github.com/MohanLi/tickbench/internal/strategy"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/MohanLi/tickbench/pkg/errors"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Options controls how a benchmark run is measured.
type Options struct {
	// Sizes is the list of tick counts to feed each strategy, smallest first.
	Sizes []int
	// Repeats is how many timed runs each cell gets; the fastest wins.
	Repeats int
	// ProfileOnSize enables a CPU profile for cells at the given size.
	ProfileOnSize optional.Option[int]
	// ProfileDir is where profile files are written.
	ProfileDir string
	// ShowProgress renders a terminal progress bar across cells.
	ShowProgress bool
}

// DefaultOptions mirrors the sizes and repeat count used for the shipped reports.
func DefaultOptions() Options {
	return Options{
		Sizes:         []int{1000, 10000, 100000},
		Repeats:       3,
		ProfileOnSize: optional.Some(100000),
		ProfileDir:    "profiles",
		ShowProgress:  true,
	}
}

// Runner drives every strategy through every configured input size and
// records one BenchmarkResult per (strategy, size) cell.
type Runner struct {
	strategies []strategy.Strategy
	ticks      []types.Tick
	opts       Options
	log        *logger.Logger
}

// NewRunner creates a Runner over the given strategies and tick dataset.
func NewRunner(strategies []strategy.Strategy, ticks []types.Tick, opts Options, log *logger.Logger) *Runner {
	return &Runner{
		strategies: strategies,
		ticks:      ticks,
		opts:       opts,
		log:        log,
	}
}

// Run executes the full benchmark grid. Iteration is size-major so that the
// strategies are compared on the same input before moving to the next size.
// Every timed run resets the strategy first, so each measurement starts from
// a fresh state.
func (r *Runner) Run(ctx context.Context) ([]types.BenchmarkResult, error) {
	if err := r.preRunCheck(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()

	r.log.Info("Starting benchmark run",
		zap.String("run_id", runID),
		zap.Int("strategies", len(r.strategies)),
		zap.Ints("sizes", r.opts.Sizes),
		zap.Int("repeats", r.opts.Repeats),
	)

	var bar *progressbar.ProgressBar
	if r.opts.ShowProgress {
		bar = progressbar.Default(int64(len(r.opts.Sizes) * len(r.strategies)))
	}

	results := make([]types.BenchmarkResult, 0, len(r.opts.Sizes)*len(r.strategies))

	for _, size := range r.opts.Sizes {
		input := r.ticks[:size]

		for _, s := range r.strategies {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if bar != nil {
				bar.Describe(fmt.Sprintf("Benchmarking %s with %d ticks", s.Name(), size))
			}

			best := time.Duration(0)
			signals := 0

			for rep := 0; rep < r.opts.Repeats; rep++ {
				elapsed, count := runOnce(s, input)
				if rep == 0 || elapsed < best {
					best = elapsed
				}

				signals = count
			}

			heap := measureHeapGrowth(s, input)

			if r.opts.ProfileOnSize.IsSome() && r.opts.ProfileOnSize.Unwrap() == size {
				profilePath, err := r.profileRun(s, input, size)
				if err != nil {
					return nil, err
				}

				r.log.Info("Wrote CPU profile",
					zap.String("strategy", s.Name()),
					zap.String("path", profilePath),
				)
			}

			results = append(results, types.BenchmarkResult{
				RunID:           runID,
				Strategy:        s.Name(),
				Size:            size,
				Repeats:         r.opts.Repeats,
				BestRuntime:     best,
				HeapGrowthBytes: heap,
				SignalCount:     signals,
				CreatedAt:       time.Now().UTC(),
			})

			r.log.Info("Benchmark cell complete",
				zap.String("strategy", s.Name()),
				zap.Int("size", size),
				zap.Duration("best_runtime", best),
				zap.Uint64("heap_growth_bytes", heap),
				zap.Int("signals", signals),
			)

			if bar != nil {
				bar.Add(1)
			}
		}
	}

	return results, nil
}

func (r *Runner) preRunCheck() error {
	if len(r.strategies) == 0 {
		r.log.Error("No strategies to benchmark")

		return errors.New(errors.ErrCodeBenchNoStrategies, "no strategies to benchmark")
	}

	if len(r.opts.Sizes) == 0 {
		r.log.Error("No input sizes to benchmark")

		return errors.New(errors.ErrCodeBenchNoSizes, "no input sizes to benchmark")
	}

	if r.opts.Repeats <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "repeats must be positive, got %d", r.opts.Repeats)
	}

	for _, size := range r.opts.Sizes {
		if size <= 0 {
			return errors.Newf(errors.ErrCodeInvalidParameter, "benchmark size must be positive, got %d", size)
		}

		if size > len(r.ticks) {
			cause := errors.NewInsufficientTicksErrorf(size, len(r.ticks), "",
				"benchmark size %d exceeds dataset of %d ticks", size, len(r.ticks))

			return errors.Wrap(errors.ErrCodeBenchNotEnoughTicks, "dataset too small for requested size", cause)
		}
	}

	return nil
}

// runOnce times one full pass over the input. The reset is inside the timed
// region, matching how the repeat loop treats a run as reset-plus-replay.
func runOnce(s strategy.Strategy, ticks []types.Tick) (time.Duration, int) {
	start := time.Now()

	s.Reset()

	signals := 0
	for _, tick := range ticks {
		signals += len(s.GenerateSignals(tick))
	}

	return time.Since(start), signals
}

// measureHeapGrowth replays the input once and reports how much heap the run
// left behind after a forced collection. Transient signal values are freed by
// the collection, so the delta is dominated by the state the strategy retains.
func measureHeapGrowth(s strategy.Strategy, ticks []types.Tick) uint64 {
	s.Reset()
	runtime.GC()

	var before runtime.MemStats

	runtime.ReadMemStats(&before)

	for _, tick := range ticks {
		s.GenerateSignals(tick)
	}

	runtime.GC()

	var after runtime.MemStats

	runtime.ReadMemStats(&after)
	runtime.KeepAlive(s)

	if after.HeapAlloc < before.HeapAlloc {
		return 0
	}

	return after.HeapAlloc - before.HeapAlloc
}

func (r *Runner) profileRun(s strategy.Strategy, ticks []types.Tick, size int) (string, error) {
	if err := os.MkdirAll(r.opts.ProfileDir, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeProfileFailed, err, "failed to create profile directory %s", r.opts.ProfileDir)
	}

	path := filepath.Join(r.opts.ProfileDir, fmt.Sprintf("%s_%d.prof", s.Name(), size))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeProfileFailed, err, "failed to create profile file %s", path)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()

		return "", errors.Wrap(errors.ErrCodeProfileFailed, "failed to start CPU profile", err)
	}

	runOnce(s, ticks)
	pprof.StopCPUProfile()

	if err := f.Close(); err != nil {
		return "", errors.Wrapf(errors.ErrCodeProfileFailed, err, "failed to close profile file %s", path)
	}

	return path, nil
}
