package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
)

// PostgresStore keeps the seen set in a PostgreSQL table. It is used instead
// of the flat file when a database URL is configured.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and makes sure the table exists.
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := NewPostgresStoreFromDB(db)
	if err := store.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	slog.Debug("postgres seen store connected")
	return store, nil
}

// NewPostgresStoreFromDB wraps an open database handle.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// InitSchema creates the seen_items table if it does not exist.
func (ps *PostgresStore) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS seen_items (
		hash VARCHAR(64) PRIMARY KEY,
		seen_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`

	if _, err := ps.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Load reads every stored hash.
func (ps *PostgresStore) Load(ctx context.Context) (SeenSet, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT hash FROM seen_items`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seen items: %w", err)
	}
	defer rows.Close()

	set := NewSeenSet()
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("failed to scan seen item: %w", err)
		}
		set.MarkSeen(hash)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seen items: %w", err)
	}
	return set, nil
}

// Save stores every hash of set in one transaction. Rows already present
// are left untouched, so the table only ever grows.
func (ps *PostgresStore) Save(ctx context.Context, set SeenSet) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO seen_items (hash) VALUES ($1) ON CONFLICT (hash) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, hash := range set.Hashes() {
		if _, err := stmt.ExecContext(ctx, hash); err != nil {
			return fmt.Errorf("failed to insert seen item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seen items: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
