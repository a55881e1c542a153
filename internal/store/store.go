package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/ddexcheck/internal/metadata"
	"github.com/vvka-141/ddexcheck/internal/retry"
	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns is small: a batch writes once, at the end.
	DefaultMaxConns = 2

	DefaultMinConns = 0

	DefaultMaxConnIdleTime = 5 * time.Minute

	// DefaultRetryAttempts is the number of retries after the first attempt.
	DefaultRetryAttempts = 3
)

// Run is the header row of one batch invocation.
type Run struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Valid      int
	Invalid    int
}

// NewRun builds a run header from batch statistics.
func NewRun(stats ddex.StatisticsSummary, started, finished time.Time) Run {
	return Run{
		ID:         uuid.New(),
		StartedAt:  started,
		FinishedAt: finished,
		Total:      stats.TotalFiles,
		Valid:      stats.ValidFiles,
		Invalid:    stats.InvalidFiles,
	}
}

// Record is one document to persist. Path is the path shown in reports;
// Checksum is the normalized content checksum.
type Record struct {
	Path     string
	Checksum string
	Result   ddex.Result
}

// StoredResult is a result row read back from the store.
type StoredResult struct {
	DocumentID  uuid.UUID
	Path        string
	Checksum    string
	MessageType string
	Version     string
	Valid       bool
	Errors      int
	Warnings    int
	Issues      []ddex.Issue
}

// Store writes validation runs to PostgreSQL. It is safe for concurrent use.
type Store struct {
	pool    *pgxpool.Pool
	retrier *retry.Retrier
	logger  ddex.Logger
	now     func() time.Time
}

// Open connects to the database at dsn, retrying transient failures.
// Errors wrap ddex.ErrStoreUnavailable.
func Open(ctx context.Context, dsn string, logger ddex.Logger) (*Store, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid store DSN: %w", ddex.ErrStoreUnavailable, err)
	}
	configurePool(poolConfig)

	r := retry.New(retry.NewStoreClassifier(), retry.NewBackoff(DefaultRetryAttempts)).
		OnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("store: attempt %d failed (%v), retrying in %s", attempt+1, err, delay.Round(time.Millisecond))
		})

	var pool *pgxpool.Pool
	err = r.Do(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		cc := poolConfig.ConnConfig
		return nil, fmt.Errorf("%w: %w", ddex.ErrStoreUnavailable, wrapConnectionError(err, cc.Host, int(cc.Port), cc.Database))
	}

	logger.Verbose("store: connected to %s:%d/%s", poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port, poolConfig.ConnConfig.Database)
	return &Store{pool: pool, retrier: r, logger: logger, now: time.Now}, nil
}

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Migrate creates the tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			for _, stmt := range migrations {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("%w: migrate: %w", ddex.ErrStoreUnavailable, err)
	}
	return nil
}

// SaveRun writes the run header and every record in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, records []Record) error {
	if run.ID == uuid.Nil {
		return fmt.Errorf("%w: run has no id", ddex.ErrInvalidConfig)
	}

	validatedAt := s.now()
	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		issues, err := json.Marshal(orEmpty(rec.Result.Issues()))
		if err != nil {
			return fmt.Errorf("encode issues for %s: %w", rec.Path, err)
		}
		rows = append(rows, []interface{}{
			uuid.New(),
			run.ID,
			metadata.DocumentID(rec.Path),
			rec.Path,
			rec.Checksum,
			rec.Result.MessageType,
			rec.Result.Version,
			rec.Result.Valid,
			len(rec.Result.Errors),
			len(rec.Result.Warnings),
			string(issues),
			validatedAt,
		})
	}

	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			batch := &pgx.Batch{}
			batch.Queue(insertRun, run.ID, run.StartedAt, run.FinishedAt, run.Total, run.Valid, run.Invalid)
			for _, args := range rows {
				batch.Queue(insertResult, args...)
			}
			return tx.SendBatch(ctx, batch).Close()
		})
	})
	if err != nil {
		return fmt.Errorf("%w: save run %s: %w", ddex.ErrStoreUnavailable, run.ID, err)
	}
	s.logger.Verbose("store: saved run %s with %d results", run.ID, len(records))
	return nil
}

// LoadRun reads a run header and its results, ordered by path.
func (s *Store) LoadRun(ctx context.Context, id uuid.UUID) (Run, []StoredResult, error) {
	var run Run
	err := s.pool.QueryRow(ctx, selectRun, id).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Total, &run.Valid, &run.Invalid)
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("%w: load run: %w", ddex.ErrStoreUnavailable, err)
	}

	rows, err := s.pool.Query(ctx, selectResults, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("%w: load results: %w", ddex.ErrStoreUnavailable, err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (StoredResult, error) {
		var r StoredResult
		var issues []byte
		if err := row.Scan(&r.DocumentID, &r.Path, &r.Checksum, &r.MessageType, &r.Version,
			&r.Valid, &r.Errors, &r.Warnings, &issues); err != nil {
			return r, err
		}
		return r, json.Unmarshal(issues, &r.Issues)
	})
	if err != nil {
		return Run{}, nil, fmt.Errorf("%w: load results: %w", ddex.ErrStoreUnavailable, err)
	}
	return run, results, nil
}

func orEmpty(issues []ddex.Issue) []ddex.Issue {
	if issues == nil {
		return []ddex.Issue{}
	}
	return issues
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port in --store-dsn or DDEXCHECK_STORE_DSN

Original error: %w`, addr, host, port, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Check the user and password in the store DSN.

Original error: %w`, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

To create it:
  createdb %s

Original error: %w`, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Original error: %w`, addr, err)

	default:
		return fmt.Errorf("failed to connect to result store: %w", err)
	}
}
