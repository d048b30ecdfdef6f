// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/sitekit/internal/model"
)

const userColumns = `id, username, password_hash, email, role, name, created_at, updated_at, last_login_at`

// CreateUserParams holds the fields for inserting a user.
type CreateUserParams struct {
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// CreateUser inserts a user and returns the stored row.
// A duplicate username surfaces as a unique violation (see IsUniqueViolation).
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	res, err := q.db.NamedExecContext(ctx, `
		INSERT INTO users (username, password_hash, email, role, name, created_at, updated_at)
		VALUES (:username, :password_hash, :email, :role, :name, :created_at, :updated_at)`, arg)
	if err != nil {
		return model.User{}, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading user id: %w", err)
	}
	return q.GetUserByID(ctx, id)
}

// GetUserByID returns a user by id.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return getOne[model.User](ctx, q.db, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetUserByUsername returns a user by username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return getOne[model.User](ctx, q.db, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// ListUsers returns all users, newest first.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := q.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM users`)
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string, now time.Time) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, now, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return requireAffected(res)
}

// UpdateUserProfileParams holds the editable profile fields.
type UpdateUserProfileParams struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UpdateUserProfile writes profile fields and returns the refreshed row.
func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (model.User, error) {
	res, err := q.db.NamedExecContext(ctx,
		`UPDATE users SET email = :email, name = :name, updated_at = :updated_at WHERE id = :id`, arg)
	if err != nil {
		return model.User{}, fmt.Errorf("updating profile: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, arg.ID)
}

// UpdateUserLastLogin records the time of the latest successful login.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}

// CreateSession appends a login audit record.
func (q *Queries) CreateSession(ctx context.Context, s model.Session) error {
	_, err := q.db.NamedExecContext(ctx, `
		INSERT INTO sessions (user_id, username, login_time, ip_address, user_agent)
		VALUES (:user_id, :username, :login_time, :ip_address, :user_agent)`, s)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}
