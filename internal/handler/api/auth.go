// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/sitekit/internal/auth"
	"github.com/olegiv/sitekit/internal/metrics"
	"github.com/olegiv/sitekit/internal/middleware"
	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/util"
	"github.com/olegiv/sitekit/internal/validation"
)

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User model.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in validation.LoginInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	if h.login != nil {
		if locked, remaining := h.login.IsAccountLocked(in.Username); locked {
			metrics.RecordLogin(metrics.LoginBlocked)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
			middleware.WriteAPIError(w, http.StatusTooManyRequests, middleware.CodeRateLimited,
				"Account temporarily locked due to too many failed login attempts", nil)
			return
		}
	}

	user, err := h.queries.GetUserByUsername(r.Context(), in.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.DebugContext(r.Context(), "login for unknown user", "username", in.Username)
			h.rejectLogin(w, in.Username)
			return
		}
		writeStoreError(w, r, err, "user", "retrieve")
		return
	}

	ok, err := auth.CheckPassword(in.Password, user.PasswordHash)
	if err != nil {
		slog.ErrorContext(r.Context(), "stored password hash unusable", "user_id", user.ID, "error", err)
	}
	if !ok {
		h.rejectLogin(w, in.Username)
		return
	}

	if h.login != nil {
		h.login.RecordSuccessfulLogin(in.Username)
	}
	now := h.now()

	if auth.NeedsRehash(user.PasswordHash) {
		h.rehashPassword(r.Context(), user.ID, in.Password, now)
	}
	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, now); err != nil {
		slog.WarnContext(r.Context(), "failed to update last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}
	h.recordSession(r, user, now)

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to issue token", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to issue token")
		return
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	slog.InfoContext(r.Context(), "user logged in", "user_id", user.ID, "username", user.Username)

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    LoginResponse{Token: token, ExpiresAt: expiresAt, User: user},
		Message: "Login successful",
	})
}

func (h *Handler) rejectLogin(w http.ResponseWriter, username string) {
	metrics.RecordLogin(metrics.LoginFailure)
	if h.login != nil {
		h.login.RecordFailedAttempt(username)
	}
	middleware.WriteAPIError(w, http.StatusUnauthorized, middleware.CodeInvalidCredentials, "Invalid credentials", nil)
}

// rehashPassword upgrades a legacy hash after a successful login.
func (h *Handler) rehashPassword(ctx context.Context, userID int64, password string, now time.Time) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.WarnContext(ctx, "failed to rehash password", "user_id", userID, "error", err)
		return
	}
	if err := h.queries.UpdateUserPassword(ctx, userID, hash, now); err != nil {
		slog.WarnContext(ctx, "failed to store rehashed password", "user_id", userID, "error", err)
		return
	}
	slog.InfoContext(ctx, "password hash upgraded", "user_id", userID)
}

// recordSession writes the login audit row. Failures are logged only.
func (h *Handler) recordSession(r *http.Request, user model.User, now time.Time) {
	raw := r.UserAgent()
	ua := useragent.Parse(raw)

	session := model.Session{
		UserID:    user.ID,
		Username:  user.Username,
		LoginTime: now,
		IPAddress: util.ClientIP(r),
		UserAgent: raw,
	}
	if err := h.queries.CreateSession(r.Context(), session); err != nil {
		slog.WarnContext(r.Context(), "failed to record login session", "user_id", user.ID, "error", err)
		return
	}

	device := deviceType(ua)
	metrics.RecordLoginDevice(device)
	slog.InfoContext(r.Context(), "login session recorded",
		"user_id", user.ID,
		"ip", session.IPAddress,
		"browser", ua.Name,
		"os", ua.OS,
		"device", device,
	)
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return "bot"
	case ua.Tablet:
		return "tablet"
	case ua.Mobile:
		return "mobile"
	case ua.Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Verify handles GET /api/auth/verify and /api/auth/me. It returns the
// current row for the token's user.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		middleware.WriteAPIError(w, http.StatusUnauthorized, middleware.CodeUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteAPIError(w, http.StatusUnauthorized, middleware.CodeInvalidToken, "Invalid token", nil)
			return
		}
		writeStoreError(w, r, err, "user", "retrieve")
		return
	}

	WriteSuccess(w, UserResponse{User: user})
}

// Logout handles POST /api/auth/logout. Tokens stay valid until they expire.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := middleware.GetClaims(r); claims != nil {
		slog.InfoContext(r.Context(), "user logged out", "user_id", claims.UserID)
	}
	WriteMessage(w, "Logout successful")
}
