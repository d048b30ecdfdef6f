// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/sitekit/internal/auth"
	"github.com/olegiv/sitekit/internal/middleware"
	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/validation"
)

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "user", "list")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	WriteSuccess(w, users)
}

// ChangePassword handles PUT /api/users/me/password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)

	var in validation.ChangePasswordInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	user, ok := h.currentUser(w, r, claims)
	if !ok {
		return
	}

	match, err := auth.CheckPassword(in.CurrentPassword, user.PasswordHash)
	if err != nil {
		slog.ErrorContext(r.Context(), "stored password hash unusable", "user_id", user.ID, "error", err)
	}
	if !match {
		middleware.WriteAPIError(w, http.StatusBadRequest, middleware.CodeWrongPassword, "Current password is incorrect", nil)
		return
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to hash password", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to update password")
		return
	}
	if err := h.queries.UpdateUserPassword(r.Context(), user.ID, hash, h.now()); err != nil {
		writeStoreError(w, r, err, "user", "update")
		return
	}

	slog.InfoContext(r.Context(), "password changed", "user_id", user.ID)
	WriteMessage(w, "Password updated successfully")
}

// UpdateProfile handles PUT /api/users/me/profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)

	var in validation.ProfileInput
	if !decodeAndValidate(w, r, &in) {
		return
	}
	if claims == nil {
		middleware.WriteAPIError(w, http.StatusUnauthorized, middleware.CodeUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.queries.UpdateUserProfile(r.Context(), store.UpdateUserProfileParams{
		ID:        claims.UserID,
		Email:     in.Email,
		Name:      in.Name,
		UpdatedAt: h.now(),
	})
	if err != nil {
		writeStoreError(w, r, err, "user", "update")
		return
	}

	WriteJSON(w, http.StatusOK, Response{Success: true, Data: UserResponse{User: user}, Message: "Profile updated successfully"})
}

// CreateAdmin handles POST /api/users/admin.
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var in validation.CreateAdminInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to hash password", "error", err)
		WriteInternalError(w, "Failed to create user")
		return
	}

	now := h.now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Role:         model.RoleAdmin,
		Name:         in.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		writeStoreError(w, r, err, "user", "create")
		return
	}

	slog.InfoContext(r.Context(), "admin user created", "new_user_id", user.ID, "username", user.Username)
	WriteCreated(w, UserResponse{User: user}, "Admin user created successfully")
}

// currentUser loads the row behind the token. Returns false after writing
// the error response.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request, claims *auth.Claims) (model.User, bool) {
	if claims == nil {
		middleware.WriteAPIError(w, http.StatusUnauthorized, middleware.CodeUnauthorized, "Authentication required", nil)
		return model.User{}, false
	}
	user, err := h.queries.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "User not found")
			return model.User{}, false
		}
		writeStoreError(w, r, err, "user", "retrieve")
		return model.User{}, false
	}
	return user, true
}
