package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

// SQLite stores each snapshot as a JSON text column keyed by user.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

func (s *SQLite) Read(ctx context.Context, userID string) (*budget.Snapshot, error) {
	var data string

	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM budget_snapshots WHERE user_id = ?`, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return decode([]byte(data))
}

func (s *SQLite) Write(ctx context.Context, userID string, snap *budget.Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO budget_snapshots (user_id, snapshot, updated_at)
		VALUES (?, ?, ?)`,
		userID, string(data), s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}
