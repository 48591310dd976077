package strategy

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohanLi/tickbench/internal/datagen"
	"github.com/MohanLi/tickbench/internal/types"
)

// retainedGrowth feeds every tick into a freshly built strategy and reports
// how much heap the run left behind after a forced collection.
func retainedGrowth(t *testing.T, build func() Strategy, ticks []types.Tick) uint64 {
	t.Helper()

	runtime.GC()

	var before runtime.MemStats

	runtime.ReadMemStats(&before)

	s := build()
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

func cyclingTicks(count int) []types.Tick {
	config := datagen.DefaultConfig()
	config.Count = count

	return datagen.GenerateCycling(config)
}

func TestCumulativeMemoryStaysFlatAcrossInputSizes(t *testing.T) {
	ticks := cyclingTicks(100000)

	growthSmall := retainedGrowth(t, func() Strategy { return NewCumulativeAverage() }, ticks[:10000])
	growthLarge := retainedGrowth(t, func() Strategy { return NewCumulativeAverage() }, ticks)

	// Constant-space strategy: a 10x larger input must not retain more heap
	assert.Less(t, growthSmall, uint64(1<<20), "10k ticks retained %d bytes", growthSmall)
	assert.Less(t, growthLarge, uint64(1<<20), "100k ticks retained %d bytes", growthLarge)
}

func TestNaiveMemoryGrowsWithInput(t *testing.T) {
	ticks := cyclingTicks(100000)

	growth := retainedGrowth(t, func() Strategy { return NewNaiveAverage() }, ticks)

	// 100k retained prices are at least 800KB of float64 history
	assert.GreaterOrEqual(t, growth, uint64(400_000), "naive retained only %d bytes", growth)
}

func TestWindowedMemoryBoundedByWindow(t *testing.T) {
	ticks := cyclingTicks(100000)

	growth := retainedGrowth(t, func() Strategy {
		s, err := NewWindowedAverage(DefaultWindowSize)
		require.NoError(t, err)

		return s
	}, ticks)

	assert.Less(t, growth, uint64(1<<20), "windowed retained %d bytes", growth)
}

func TestCumulativeHandles100kTicksQuickly(t *testing.T) {
	ticks := cyclingTicks(100000)
	s := NewCumulativeAverage()
	s.Reset()

	start := time.Now()

	count := 0
	for _, tick := range ticks {
		count += len(s.GenerateSignals(tick))
	}

	elapsed := time.Since(start)

	require.Equal(t, 100000, count)
	assert.Less(t, elapsed, 2*time.Second, "100k ticks took %s", elapsed)
}
