// Package store persists benchmark results in DuckDB so runs can be
// compared and browsed after the fact.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MohanLi/tickbench/internal/logger"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/MohanLi/tickbench/pkg/errors"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"
)

// ResultStore stores one row per benchmark cell, keyed by a generated id and
// grouped by the run id the runner assigned.
type ResultStore struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// RunSummary describes one stored run.
type RunSummary struct {
	RunID     string
	StartedAt time.Time
	Cells     int
}

// NewResultStore opens (or creates) the result database at dbPath and makes
// sure the schema exists. Use ":memory:" for an ephemeral store.
func NewResultStore(dbPath string, log *logger.Logger) (*ResultStore, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreInitFailed, err, "failed to open result database %s", dbPath)
	}

	s := &ResultStore{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := s.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return s, nil
}

func (s *ResultStore) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS bench_results (
			id TEXT PRIMARY KEY,
			run_id TEXT,
			strategy TEXT,
			size BIGINT,
			repeats INTEGER,
			best_runtime_ns BIGINT,
			heap_growth_bytes BIGINT,
			signal_count BIGINT,
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create bench_results table", err)
	}

	return nil
}

// SaveResults writes all cells of a run in one transaction.
func (s *ResultStore) SaveResults(results []types.BenchmarkResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to begin transaction", err)
	}

	for _, result := range results {
		insertQuery := s.sq.
			Insert("bench_results").
			Columns(
				"id", "run_id", "strategy", "size", "repeats",
				"best_runtime_ns", "heap_growth_bytes", "signal_count", "created_at",
			).
			Values(
				uuid.New().String(), result.RunID, result.Strategy, result.Size, result.Repeats,
				result.BestRuntime.Nanoseconds(), int64(result.HeapGrowthBytes), result.SignalCount, result.CreatedAt,
			).
			RunWith(tx)

		if _, err := insertQuery.Exec(); err != nil {
			tx.Rollback()

			return errors.Wrapf(errors.ErrCodeStoreWriteFailed, err,
				"failed to insert result for %s at size %d", result.Strategy, result.Size)
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to commit results", err)
	}

	s.logger.Info("Saved benchmark results",
		zap.Int("cells", len(results)),
	)

	return nil
}

// ListRuns returns stored runs, most recent first.
func (s *ResultStore) ListRuns() ([]RunSummary, error) {
	selectQuery := s.sq.
		Select("run_id", "MIN(created_at) AS started_at", "COUNT(*) AS cells").
		From("bench_results").
		GroupBy("run_id").
		OrderBy("started_at DESC").
		RunWith(s.db)

	rows, err := selectQuery.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to query runs", err)
	}
	defer rows.Close()

	var runs []RunSummary

	for rows.Next() {
		var run RunSummary

		if err := rows.Scan(&run.RunID, &run.StartedAt, &run.Cells); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to scan run summary", err)
		}

		run.StartedAt = run.StartedAt.UTC()
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "error iterating runs", err)
	}

	return runs, nil
}

// GetRunResults returns the cells of one run ordered by size then strategy.
func (s *ResultStore) GetRunResults(runID string) ([]types.BenchmarkResult, error) {
	selectQuery := s.sq.
		Select(
			"run_id", "strategy", "size", "repeats",
			"best_runtime_ns", "heap_growth_bytes", "signal_count", "created_at",
		).
		From("bench_results").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("size ASC", "strategy ASC").
		RunWith(s.db)

	rows, err := selectQuery.Query()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreQueryFailed, err, "failed to query results for run %s", runID)
	}
	defer rows.Close()

	var results []types.BenchmarkResult

	for rows.Next() {
		var (
			result    types.BenchmarkResult
			runtimeNs int64
			heapBytes int64
		)

		err := rows.Scan(
			&result.RunID,
			&result.Strategy,
			&result.Size,
			&result.Repeats,
			&runtimeNs,
			&heapBytes,
			&result.SignalCount,
			&result.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to scan result", err)
		}

		result.BestRuntime = time.Duration(runtimeNs)
		result.HeapGrowthBytes = uint64(heapBytes)
		result.CreatedAt = result.CreatedAt.UTC()
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "error iterating results", err)
	}

	if len(results) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "no results stored for run %s", runID)
	}

	return results, nil
}

// LatestRunID returns the id of the most recently stored run, if any.
func (s *ResultStore) LatestRunID() (optional.Option[string], error) {
	selectQuery := s.sq.
		Select("run_id").
		From("bench_results").
		OrderBy("created_at DESC").
		Limit(1).
		RunWith(s.db)

	var runID string

	err := selectQuery.QueryRow().Scan(&runID)
	if err == sql.ErrNoRows {
		return optional.None[string](), nil
	}

	if err != nil {
		return optional.None[string](), errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to query latest run", err)
	}

	return optional.Some(runID), nil
}

// Export writes the full results table to a Parquet file in dir.
func (s *ResultStore) Export(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeStoreWriteFailed, err, "failed to create export directory %s", dir)
	}

	// Squirrel doesn't support COPY, so raw SQL here.
	exportPath := filepath.Join(dir, "bench_results.parquet")

	_, err := s.db.Exec(fmt.Sprintf(`COPY bench_results TO '%s' (FORMAT PARQUET)`, exportPath))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to export results to Parquet", err)
	}

	s.logger.Info("Exported benchmark results",
		zap.String("path", exportPath),
	)

	return exportPath, nil
}

// Close releases the database connection.
func (s *ResultStore) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil

	return err
}
