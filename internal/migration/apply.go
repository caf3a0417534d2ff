package migration

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

// Applier runs generated migration scripts against Postgres.
type Applier struct {
	db *sql.DB
}

// NewApplier wraps an open database handle.
func NewApplier(db *sql.DB) *Applier {
	return &Applier{db: db}
}

// Open connects to dsn with the lib/pq driver.
func Open(ctx context.Context, dsn string) (*Applier, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration: failed to connect to database: %w", err)
	}
	return &Applier{db: db}, nil
}

// Close releases the database handle.
func (a *Applier) Close() error {
	return a.db.Close()
}

// Apply executes script as a single multi-statement query. Generated scripts carry their own transaction.
func (a *Applier) Apply(ctx context.Context, script string) error {
	if _, err := a.db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("migration: failed to apply script: %w", err)
	}
	return nil
}

// ApplyFile reads path and applies it.
func (a *Applier) ApplyFile(ctx context.Context, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("migration: failed to read %s: %w", path, err)
	}
	if err := a.Apply(ctx, string(script)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
