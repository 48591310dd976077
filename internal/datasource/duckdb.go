package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/MohanLi/tickbench/internal/logger"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/MohanLi/tickbench/pkg/errors"
)

// DuckDBSource loads ticks through a DuckDB view over a CSV file. DuckDB
// does the parsing and type sniffing; Load only orders and scans.
type DuckDBSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

var _ TickSource = (*DuckDBSource)(nil)

// NewDuckDBSource creates a DuckDB-backed tick source. The path parameter
// specifies the DuckDB database file location, or ":memory:" for a
// transient database.
func NewDuckDBSource(path string, log *logger.Logger) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB", err)
	}

	_, err = db.Exec(`
		SET memory_limit='2GB';
		SET threads=4;
	`)
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to set DuckDB options: %w", err)
	}

	return &DuckDBSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// InitializeFromCSV creates the ticks view over the given CSV file.
func (d *DuckDBSource) InitializeFromCSV(csvPath string) error {
	d.logger.Debug("initializing DuckDB tick source", zap.String("csv", csvPath))

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS ticks;`); err != nil {
		return fmt.Errorf("failed to drop existing view: %w", err)
	}

	// Squirrel doesn't support CREATE VIEW, so raw SQL here
	query := fmt.Sprintf(`
		CREATE VIEW ticks AS
		SELECT * FROM read_csv_auto('%s', header=true);
	`, csvPath)

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to create view over %s", csvPath)
	}

	return nil
}

// Load implements TickSource. Ticks come back ordered by timestamp.
func (d *DuckDBSource) Load(ctx context.Context) ([]types.Tick, error) {
	return d.LoadRange(ctx, optional.None[time.Time](), optional.None[time.Time]())
}

// LoadRange loads the ticks within the optional [start, end] bounds,
// ordered by timestamp.
func (d *DuckDBSource) LoadRange(ctx context.Context, start, end optional.Option[time.Time]) ([]types.Tick, error) {
	builder := d.sq.Select("timestamp", "symbol", "price").
		From("ticks").
		OrderBy("timestamp")

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"timestamp": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"timestamp": end.Unwrap()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build tick query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query ticks", err)
	}
	defer rows.Close()

	var ticks []types.Tick

	for rows.Next() {
		var (
			timestamp time.Time
			symbol    string
			price     float64
		)

		if err := rows.Scan(&timestamp, &symbol, &price); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan tick row", err)
		}

		ticks = append(ticks, types.Tick{
			Timestamp: timestamp.UTC(),
			Symbol:    symbol,
			Price:     price,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed while reading tick rows", err)
	}

	d.logger.Debug("loaded ticks from DuckDB", zap.Int("count", len(ticks)))

	return ticks, nil
}

// Count reports how many ticks the view holds.
func (d *DuckDBSource) Count(ctx context.Context) (int, error) {
	query, args, err := d.sq.Select("COUNT(*)").From("ticks").ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var count int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count ticks", err)
	}

	return count, nil
}

// Close implements TickSource.
func (d *DuckDBSource) Close() error {
	return d.db.Close()
}
