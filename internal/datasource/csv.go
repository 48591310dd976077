package datasource

import (
	"context"
	stdcsv "encoding/csv"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/MohanLi/tickbench/internal/logger"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/MohanLi/tickbench/pkg/errors"
)

// csvTime parses ISO 8601 timestamps from CSV cells. Zone-less values are
// interpreted as UTC.
type csvTime struct {
	time.Time
}

// Layouts accepted for timestamps without a zone designator.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (t *csvTime) UnmarshalCSV(value string) error {
	s := strings.TrimSpace(value)

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed.UTC()

		return nil
	}

	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed

			return nil
		}
	}

	return errors.Newf(errors.ErrCodeParseFailed, "unsupported timestamp format: %q", value)
}

// tickRow mirrors one CSV record.
type tickRow struct {
	Timestamp csvTime `csv:"timestamp"`
	Symbol    string  `csv:"symbol"`
	Price     float64 `csv:"price"`
}

// CSVSource loads ticks from a timestamp,symbol,price CSV file.
type CSVSource struct {
	filePath string
	logger   *logger.Logger
}

var _ TickSource = (*CSVSource)(nil)

// NewCSVSource creates a tick source reading from the CSV file at filePath.
func NewCSVSource(filePath string, log *logger.Logger) *CSVSource {
	return &CSVSource{
		filePath: filePath,
		logger:   log,
	}
}

// Load implements TickSource. Rows are returned in file order. Malformed
// timestamps or prices, missing required columns, and blank symbols all fail
// the load; no partial data is returned.
func (s *CSVSource) Load(ctx context.Context) ([]types.Tick, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to open CSV file %s", s.filePath)
	}
	defer file.Close()

	if err := validateHeader(file); err != nil {
		return nil, err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailed, "failed to rewind CSV file", err)
	}

	var rows []*tickRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to parse CSV file %s", s.filePath)
	}

	ticks := make([]types.Tick, 0, len(rows))

	for i, row := range rows {
		symbol := strings.TrimSpace(row.Symbol)
		if symbol == "" {
			return nil, errors.Newf(errors.ErrCodeParseFailed, "row %d: empty symbol", i+1)
		}

		if math.IsNaN(row.Price) || math.IsInf(row.Price, 0) {
			return nil, errors.Newf(errors.ErrCodeParseFailed, "row %d: price %v is not finite", i+1, row.Price)
		}

		ticks = append(ticks, types.Tick{
			Timestamp: row.Timestamp.Time,
			Symbol:    symbol,
			Price:     row.Price,
		})
	}

	s.logger.Info("loaded ticks from CSV",
		zap.String("path", s.filePath),
		zap.Int("count", len(ticks)),
	)

	return ticks, nil
}

// Close implements TickSource. CSVSource holds no open resources between
// loads.
func (s *CSVSource) Close() error {
	return nil
}

// validateHeader checks that the header row names every required column.
func validateHeader(file *os.File) error {
	reader := stdcsv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return errors.Wrap(errors.ErrCodeParseFailed, "failed to read CSV header", err)
	}

	present := make(map[string]bool, len(header))
	for _, column := range header {
		present[strings.TrimSpace(column)] = true
	}

	for _, required := range []string{"timestamp", "symbol", "price"} {
		if !present[required] {
			return errors.Newf(errors.ErrCodeMissingParameter, "CSV is missing required column %q, got %v", required, header)
		}
	}

	return nil
}
