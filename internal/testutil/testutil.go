// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the sitekit project.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/olegiv/sitekit/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a logger that only outputs errors.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB opens a migrated database in a temporary directory using the cgo
// SQLite driver. It is closed when the test ends.
func TestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := store.DefaultDBConfig()
	cfg.Driver = store.DriverCGO

	db, err := store.NewDBWithConfig(filepath.Join(t.TempDir(), "sitekit-test.db"), cfg)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db.DB); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}
