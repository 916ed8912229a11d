package daystate

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shiftboard/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new day-state store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the payload stored under a day key.
// PRE: dayKey is non-empty
// POST: Returns the payload, or ErrNotFound if the day has no row
func (s *SQLiteStore) Get(ctx context.Context, dayKey string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM day_state WHERE day_key = ?", dayKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// Put persists the payload under a day key.
// PRE: dayKey is non-empty, payload is valid serialized state
// POST: Row is inserted or replaced; prior days' rows are untouched
func (s *SQLiteStore) Put(ctx context.Context, dayKey string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO day_state (day_key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(day_key) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		dayKey, string(payload), time.Now().Format(time.RFC3339Nano))
	return err
}
