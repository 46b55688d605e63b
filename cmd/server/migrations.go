package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "goose")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), "component", "goose")
}

// runMigrations brings the database schema up to date using the
// embedded goose migrations. A correlation ID ties all migration logs
// for one boot together.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	correlationID := uuid.New().String()
	migrationLogger := logger.With(
		"correlation_id", correlationID,
		"component", "migrations",
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation", "operation", "goose up")

	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		migrationLogger.Error("Migration failed",
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	migrationLogger.Info("Migrations applied successfully",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}
