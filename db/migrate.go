// file: db/migrate.go

package db

import (
	"errors"
	"fmt"
	"go-bank-ledger/config"
	"go-bank-ledger/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies every pending migration from the configured migrations directory.
func Migrate() error {
	migrationPath := "file://" + config.AppConfig.Database.MigrationsPath
	log := logger.Log.WithField("source", migrationPath)

	mig, err := migrate.New(migrationPath, MigrationURL())
	if err != nil {
		log.WithError(err).Error("Cannot create migrate instance")
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}
	defer mig.Close()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.WithError(err).Error("Failed to run migrate up")
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	log.Info("Database schema is up to date")
	return nil
}
