package store

const postgresSchema = `
CREATE TABLE IF NOT EXISTS budget_snapshots (
    user_id    TEXT PRIMARY KEY,
    snapshot   JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS budget_snapshots (
    user_id    TEXT PRIMARY KEY,
    snapshot   TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`
