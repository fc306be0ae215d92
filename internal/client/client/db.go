// Package client wires the Spectra CLI's local persistence: an SQLite
// database with embedded goose migrations and the repositories built on it.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/HASANPOWER/Spectra-App/internal/client/migrations"
	"github.com/HASANPOWER/Spectra-App/internal/client/repositories/settings"
)

// Repositories bundles the local data access layer.
type Repositories struct {
	Settings settings.Repository
	DB       *sql.DB
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies the embedded goose migrations. Safe to run on
// every start; applied migrations are skipped.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local SQLite database at dsn,
// migrates it and returns the repositories over it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repositories{
		Settings: settings.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}
