package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MohanLi/tickbench/internal/types"
)

// WriteCSV writes ticks to path as a timestamp,symbol,price CSV file.
// Timestamps are formatted as RFC 3339 and prices with six decimal places,
// matching what the CSV tick source reads back.
func WriteCSV(path string, ticks []types.Tick) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"timestamp", "symbol", "price"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, tick := range ticks {
		record := []string{
			tick.Timestamp.UTC().Format(time.RFC3339),
			tick.Symbol,
			fmt.Sprintf("%.6f", tick.Price),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write tick: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}
