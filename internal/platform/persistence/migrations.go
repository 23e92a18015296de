package persistence

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations brings the users, accounts, transactions and outbox tables up
// to the latest schema version. A plain directory is read through the file
// source driver.
func RunMigrations(logger *slog.Logger, databaseURL string, migrationsPath string) (err error) {
	if migrationsPath == "" {
		return errors.New("migrations path cannot be empty")
	}
	if databaseURL == "" {
		return errors.New("database URL cannot be empty")
	}

	m, err := migrate.New(migrationSourceURL(migrationsPath), databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if err != nil {
			return
		}
		switch {
		case sourceErr != nil:
			err = fmt.Errorf("migration source error: %w", sourceErr)
		case dbErr != nil:
			err = fmt.Errorf("migration database error: %w", dbErr)
		}
	}()

	upErr := m.Up()
	switch {
	case errors.Is(upErr, migrate.ErrNoChange):
		logger.Info("Database schema is up to date")
		return nil
	case upErr != nil:
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("Applied database migrations", "version", version, "dirty", dirty)
	return nil
}

func migrationSourceURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}
