package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// gooseDialect translates our driver names to what goose expects.
func gooseDialect(driver string) string {
	switch driver {
	case "sqlite":
		return "sqlite3"
	case "pgx":
		return "postgres"
	}
	return driver
}

func prepareGoose(driver string) error {
	err := goose.SetDialect(gooseDialect(driver))
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	goose.SetBaseFS(dir)

	return nil
}

// RunMigrations applies all pending migrations from the embedded set.
// It runs at startup and in repository tests against :memory: databases.
func RunMigrations(database *sql.DB, driver string) error {
	err := prepareGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Up(database, ".")
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("migrations completed successfully")
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(database *sql.DB, driver string) error {
	err := prepareGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Down(database, ".")
	if err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	slog.Info("rolled back one migration")
	return nil
}
