// Package datagen produces synthetic tick series from a seeded random walk.
// Benchmarks and the market CLI both feed on it.
package datagen

import (
	"math"
	"math/rand"
	"time"

	"github.com/MohanLi/tickbench/internal/types"
)

// DefaultSeed is the fixed seed used for reproducible series.
const DefaultSeed int64 = 42

// MinPrice is the floor the random walk never crosses.
const MinPrice = 0.01

// Generator generates synthetic tick data for benchmarking and testing.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a new Generator with the given seed.
// Use a fixed seed for reproducible results.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Config configures how tick data is generated.
type Config struct {
	// Symbol is the instrument symbol stamped on every tick
	Symbol string
	// StartTime is the timestamp of the first tick
	StartTime time.Time
	// Interval is the duration between consecutive ticks
	Interval time.Duration
	// Count is the number of ticks to generate
	Count int
	// StartPrice is the price of the first tick
	StartPrice float64
	// Drift is the constant price change applied per step
	Drift float64
	// Volatility is the standard deviation of the per-step noise
	Volatility float64
}

// DefaultConfig returns the configuration benchmark datasets are built with.
func DefaultConfig() Config {
	return Config{
		Symbol:     "SIM",
		StartTime:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:   time.Second,
		Count:      100000,
		StartPrice: 100.0,
		Drift:      0.0005,
		Volatility: 0.2,
	}
}

// Generate creates a tick series following an additive random walk:
//
//	price[t+1] = max(MinPrice, price[t] + drift + noise), noise ~ Normal(0, volatility)
//
// The first tick carries StartPrice unchanged.
func (g *Generator) Generate(config Config) []types.Tick {
	ticks := make([]types.Tick, config.Count)
	currentPrice := config.StartPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		ticks[i] = types.Tick{
			Timestamp: currentTime,
			Symbol:    config.Symbol,
			Price:     currentPrice,
		}

		// Box-Muller transform for normal distribution
		u1 := math.Max(g.rng.Float64(), 1e-12)
		u2 := g.rng.Float64()
		z := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)

		currentPrice = math.Max(MinPrice, currentPrice+config.Drift+z*config.Volatility)
		currentTime = currentTime.Add(config.Interval)
	}

	return ticks
}

// GenerateCycling creates a deterministic non-random series whose prices
// cycle 1..100. Useful where reproducibility matters more than realism.
func GenerateCycling(config Config) []types.Tick {
	ticks := make([]types.Tick, config.Count)
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		ticks[i] = types.Tick{
			Timestamp: currentTime,
			Symbol:    config.Symbol,
			Price:     float64((i % 100) + 1),
		}
		currentTime = currentTime.Add(config.Interval)
	}

	return ticks
}
