package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lcrown/tickerdata/internal/model"
)

// Metrics counts store activity.
type Metrics struct {
	Upserts int64
	Errors  int64
}

// Store writes ticker records to the tickers table, one row per symbol.
type Store struct {
	db     *pgxpool.Pool
	logger *slog.Logger

	mu      sync.Mutex
	metrics Metrics
}

// New creates a Store.
func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the tickers table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS tickers (
			symbol      TEXT PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			tags        TEXT[] NOT NULL DEFAULT '{}',
			similar     TEXT[] NOT NULL DEFAULT '{}',
			industry    TEXT NOT NULL DEFAULT '',
			sector      TEXT NOT NULL DEFAULT '',
			exchange    TEXT NOT NULL DEFAULT '',
			active      BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at  BIGINT NOT NULL
		)`

	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create tickers table: %w", err)
	}

	s.logger.Info("tickers schema ready")
	return nil
}

// Upsert writes a ticker record, fully overwriting any existing row for the
// same symbol. The row is either entirely from this record or untouched;
// there are no partial writes.
func (s *Store) Upsert(ctx context.Context, t model.Ticker) error {
	const query = `
		INSERT INTO tickers (symbol, name, description, tags, similar, industry, sector, exchange, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (symbol) DO UPDATE SET
			name        = EXCLUDED.name,
			description = EXCLUDED.description,
			tags        = EXCLUDED.tags,
			similar     = EXCLUDED.similar,
			industry    = EXCLUDED.industry,
			sector      = EXCLUDED.sector,
			exchange    = EXCLUDED.exchange,
			active      = EXCLUDED.active,
			updated_at  = EXCLUDED.updated_at`

	_, err := s.db.Exec(ctx, query,
		t.Symbol, t.Name, t.Description, t.Tags, t.Similar,
		t.Industry, t.Sector, t.Exchange, t.Active, t.UpdatedAt,
	)

	s.mu.Lock()
	if err != nil {
		s.metrics.Errors++
	} else {
		s.metrics.Upserts++
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("upsert ticker %s: %w", t.Symbol, err)
	}
	return nil
}

// Count returns the number of stored ticker rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tickers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tickers: %w", err)
	}
	return n, nil
}

// Stats returns current metrics.
func (s *Store) Stats() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}
