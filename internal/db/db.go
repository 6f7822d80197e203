package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Pool sizing for the single-process deployment. SQLite serializes
// writes anyway; Postgres gets a modest pool.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// Init opens the database for the configured driver. For SQLite the
// parent directory of the database file is created on first run.
func Init(driver, connection string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		err := os.MkdirAll(filepath.Dir(connection), 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	database, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	database.SetMaxOpenConns(maxOpenConns)
	database.SetMaxIdleConns(maxIdleConns)
	database.SetConnMaxLifetime(connMaxLifetime)

	err = database.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return database, nil
}

func Close(database *sqlx.DB) error {
	if database == nil {
		return nil
	}
	return database.Close()
}
