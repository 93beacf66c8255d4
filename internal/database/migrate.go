package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations from the given directory.
// Already being up to date is not an error.
func RunMigrations(databaseURL, migrationsPath string) error {
	// The migrate pgx driver registers under its own URL scheme.
	sourceURL := "file://" + migrationsPath
	pgxURL := strings.Replace(databaseURL, "postgres://", "pgx5://", 1)

	m, err := migrate.New(sourceURL, pgxURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
