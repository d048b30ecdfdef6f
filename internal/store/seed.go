// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/olegiv/sitekit/internal/auth"
	"github.com/olegiv/sitekit/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Administrator"
)

// SeedOptions controls what Seed creates.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	// Demo also inserts sample blog posts and projects into empty tables.
	Demo bool
}

// Seed creates the bootstrap admin when the users table is empty, and demo
// content when requested. Safe to run on every start.
func Seed(ctx context.Context, db *sqlx.DB, opts SeedOptions) error {
	queries := New(db)

	if opts.AdminUsername == "" {
		opts.AdminUsername = DefaultAdminUsername
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = DefaultAdminPassword
	}

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}

	if count > 0 {
		slog.Debug("users already exist, skipping admin seed")
	} else if err := seedAdmin(ctx, queries, opts); err != nil {
		return err
	}

	if opts.Demo {
		if err := SeedDemo(ctx, queries); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, queries *Queries, opts SeedOptions) error {
	passwordHash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     opts.AdminUsername,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         DefaultAdminName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user", "id", user.ID, "username", user.Username)
	if opts.AdminPassword == DefaultAdminPassword {
		slog.Warn("admin user has the default password, change it after first login")
	}
	return nil
}
