// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitekit/internal/auth"
	"github.com/olegiv/sitekit/internal/middleware"
	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/testutil"
)

// createEditor inserts a non-admin account directly.
func createEditor(t *testing.T, env *testEnv, username, password string) model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	now := time.Now().UTC()
	user, err := env.queries.CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		Role:         "editor",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return user
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	tests := []struct {
		name  string
		body  map[string]string
		code  string
		field string
	}{
		{name: "wrong current", body: map[string]string{"currentPassword": "nope", "newPassword": "long-enough-1"}, code: middleware.CodeWrongPassword},
		{name: "too short", body: map[string]string{"currentPassword": "admin123", "newPassword": "short"}, code: middleware.CodeValidationFailed, field: "newPassword"},
		{name: "unchanged", body: map[string]string{"currentPassword": "admin123", "newPassword": "admin123"}, code: middleware.CodeValidationFailed, field: "newPassword"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPut, "/users/me/password", tt.body, token)
			errEnv := requireError(t, rec, http.StatusBadRequest, tt.code)
			if tt.field != "" {
				assert.Equal(t, []string{tt.field}, fieldNames(errEnv))
			}
		})
	}

	rec := env.do(t, http.MethodPut, "/users/me/password",
		map[string]string{"currentPassword": "admin123", "newPassword": "correct-horse-42"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Password updated successfully", decode[any](t, rec).Message)

	requireError(t, env.do(t, http.MethodPost, "/auth/login", loginBody("admin", "admin123"), ""),
		http.StatusUnauthorized, middleware.CodeInvalidCredentials)

	rec = env.do(t, http.MethodPost, "/auth/login", loginBody("admin", "correct-horse-42"), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[LoginResponse](t, rec).Data.Token)
}

func TestChangePassword_RequiresToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPut, "/users/me/password",
		map[string]string{"currentPassword": "admin123", "newPassword": "correct-horse-42"}, "")
	requireError(t, rec, http.StatusUnauthorized, middleware.CodeMissingToken)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	editor := createEditor(t, env, "writer", "writer-pass-1")
	token := env.tokenFor(t, editor)

	rec := env.do(t, http.MethodPut, "/users/me/profile",
		map[string]string{"email": " Writer@Example.com ", "name": " Jo Writer "}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	user := decode[UserResponse](t, rec).Data.User
	assert.Equal(t, editor.ID, user.ID)
	assert.Equal(t, "writer@example.com", user.Email)
	assert.Equal(t, "Jo Writer", user.Name)

	rec = env.do(t, http.MethodPut, "/users/me/profile", map[string]string{"email": "nope"}, token)
	errEnv := requireError(t, rec, http.StatusBadRequest, middleware.CodeValidationFailed)
	assert.Equal(t, []string{"email"}, fieldNames(errEnv))
}

func TestCreateAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	body := map[string]string{"username": "ops", "password": "ops-password-1", "email": "OPS@example.com"}

	rec := env.do(t, http.MethodPost, "/users/admin", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[UserResponse](t, rec).Data.User
	assert.Equal(t, "ops", user.Username)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, "ops@example.com", user.Email)

	rec = env.do(t, http.MethodPost, "/auth/login", loginBody("ops", "ops-password-1"), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	requireError(t, env.do(t, http.MethodPost, "/users/admin", body, token), http.StatusConflict, middleware.CodeConflict)

	rec = env.do(t, http.MethodPost, "/users/admin", map[string]string{"username": "a!", "password": "x"}, token)
	errEnv := requireError(t, rec, http.StatusBadRequest, middleware.CodeValidationFailed)
	assert.ElementsMatch(t, []string{"username", "password"}, fieldNames(errEnv))

	editorToken := env.tokenFor(t, createEditor(t, env, "writer", "writer-pass-1"))
	requireError(t, env.do(t, http.MethodPost, "/users/admin", body, editorToken), http.StatusForbidden, middleware.CodeForbidden)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	createEditor(t, env, "writer", "writer-pass-1")

	rec := env.do(t, http.MethodGet, "/users", nil, env.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$argon2id$")

	users := decode[[]model.User](t, rec).Data
	require.Len(t, users, 2)
	names := []string{users[0].Username, users[1].Username}
	assert.ElementsMatch(t, []string{"admin", "writer"}, names)
}

func TestListUsers_NewestFirstAcrossTimeZones(t *testing.T) {
	db := testutil.TestDB(t)
	require.NoError(t, store.Seed(context.Background(), db, store.SeedOptions{}))

	pacific := time.FixedZone("PDT", -7*60*60)
	later := time.Now().Add(time.Hour).In(pacific)
	h := NewHandler(Config{
		DB:     db,
		Tokens: auth.NewTokenManager(testJWTSecret, time.Hour),
		Now:    func() time.Time { return later },
	})
	router := h.Routes()

	admin, err := store.New(db).GetUserByUsername(context.Background(), store.DefaultAdminUsername)
	require.NoError(t, err)
	token, _, err := h.tokens.Issue(admin)
	require.NoError(t, err)

	req := newRequest(http.MethodPost, "/users/admin", strings.NewReader(`{"username":"second","password":"second-pass-1"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := serve(router, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[UserResponse](t, rec).Data.User
	assert.True(t, created.CreatedAt.Equal(later))

	req = newRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	users := decode[[]model.User](t, serve(router, req)).Data
	require.Len(t, users, 2)
	assert.Equal(t, "second", users[0].Username)
	assert.Equal(t, store.DefaultAdminUsername, users[1].Username)
}
