// Package datasource loads tick series from CSV files or DuckDB tables.
package datasource

import (
	"context"
	"fmt"

	"github.com/MohanLi/tickbench/internal/types"
)

// TickSource loads an ordered tick series into memory.
//
// Loading the full dataset is O(N) space for N rows: the slice holds N
// fixed-size Tick structs plus the symbol string bytes. Benchmark runs want
// the whole series resident so measured work is strategy work only.
type TickSource interface {
	// Load reads every tick the source holds, in stored order.
	Load(ctx context.Context) ([]types.Tick, error)

	// Close releases any resources the source holds.
	Close() error
}

// DatasetSpaceNote explains the memory cost of holding a loaded dataset.
func DatasetSpaceNote(rowCount int) string {
	return fmt.Sprintf(
		"Storing %d ticks in a slice is O(N) space: N fixed-size structs (timestamp, symbol header, price) plus the symbol string bytes.",
		rowCount,
	)
}
