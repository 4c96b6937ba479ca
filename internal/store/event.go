package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceTable holds the single-row counter behind the sequence shared by
// all event tables, so a generation can be ordered against the LLM calls
// it caused. It is created outside the migrated schema because its one
// row must be seeded exactly once.
const sequenceTable = "global_sequence"

func ensureSequence(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + sequenceTable + ` (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`); err != nil {
		return fmt.Errorf("create sequence table: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO ` + sequenceTable + ` (id, next_val) VALUES (1, 1)`); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// appender inserts event rows. The counter bump and the insert share a
// transaction; a failed insert leaves the sequence untouched.
type appender struct {
	mu sync.Mutex
	db *sql.DB
}

// append stamps a row of table with the next sequence number and the
// current UTC time, followed by the given columns and values.
func (a *appender) append(ctx context.Context, table string, columns []string, values ...any) (seq int64, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx,
		`UPDATE `+sequenceTable+` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seq, time.Now().UTC()}, values...)...).
		Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return seq, nil
}

// withBase prefixes fields with the columns every event table carries.
func withBase(fields []string) []string {
	return append([]string{"id", "sequence", "timestamp"}, fields...)
}
