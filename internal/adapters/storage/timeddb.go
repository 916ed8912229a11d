package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// DefaultSlowQueryMs is the default threshold for slow query warnings.
const DefaultSlowQueryMs = 50

// TimedDB wraps a *sql.DB and logs queries that exceed the slow-query
// threshold. The threshold is read from SHIFTBOARD_SLOW_QUERY_MS once at
// construction.
type TimedDB struct {
	db     *sql.DB
	slowMs float64
}

// Compile-time check that *TimedDB satisfies SQLDB.
var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps db with slow-query logging.
func NewTimedDB(db *sql.DB) *TimedDB {
	ms := DefaultSlowQueryMs
	if v := os.Getenv("SHIFTBOARD_SLOW_QUERY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ms = n
		}
	}
	return &TimedDB{db: db, slowMs: float64(ms)}
}

func (t *TimedDB) observe(query string, start time.Time) {
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	if elapsed >= t.slowMs {
		slog.Warn("slow_query", "query", query, "elapsed_ms", elapsed)
	}
}

// ExecContext runs a statement, logging it when slow.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer t.observe(query, time.Now())
	return t.db.ExecContext(ctx, query, args...)
}

// QueryContext runs a query, logging it when slow.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer t.observe(query, time.Now())
	return t.db.QueryContext(ctx, query, args...)
}

// QueryRowContext runs a single-row query, logging it when slow.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer t.observe(query, time.Now())
	return t.db.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction. Statements inside the transaction are not
// individually timed.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return t.db.BeginTx(ctx, opts)
}
