package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

// Postgres stores each snapshot as a JSONB document keyed by user.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

func (s *Postgres) Read(ctx context.Context, userID string) (*budget.Snapshot, error) {
	query := `SELECT snapshot FROM budget_snapshots WHERE user_id = $1`

	var data []byte

	err := s.db.QueryRowContext(ctx, query, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return decode(data)
}

func (s *Postgres) Write(ctx context.Context, userID string, snap *budget.Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO budget_snapshots (user_id, snapshot, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET snapshot = EXCLUDED.snapshot, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, userID, string(data)); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}
