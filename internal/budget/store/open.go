package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/config"
	"github.com/MrJamesThe3rd/pocketplan/internal/database"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Store selected by STORE_BACKEND. The returned Closer releases any
// database handle the store holds.
func Open(ctx context.Context, cfg *config.Config) (budget.Store, io.Closer, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return NewMemory(), nopCloser{}, nil

	case config.BackendFile:
		f, err := NewFile(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}

		return f, nopCloser{}, nil

	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		s := NewPostgres(db)

		return migrated(ctx, s, db)

	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		s := NewSQLite(db)

		return migrated(ctx, s, db)
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

type migrator interface {
	budget.Store
	Migrate(ctx context.Context) error
}

func migrated(ctx context.Context, s migrator, db *sql.DB) (budget.Store, io.Closer, error) {
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return s, db, nil
}
