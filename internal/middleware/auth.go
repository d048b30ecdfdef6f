// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/sitekit/internal/auth"
	"github.com/olegiv/sitekit/internal/logging"
)

// ContextKeyClaims is the context key for verified token claims.
const ContextKeyClaims ContextKey = "claims"

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireToken creates middleware that verifies the bearer token and puts
// its claims into the request context.
func RequireToken(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				WriteAPIError(w, http.StatusUnauthorized, CodeMissingToken, "Access token required", nil)
				return
			}

			claims, err := tokens.Parse(raw)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrTokenExpired):
				WriteAPIError(w, http.StatusUnauthorized, CodeTokenExpired, "Token expired", nil)
				return
			case errors.Is(err, auth.ErrInvalidToken):
				slog.DebugContext(r.Context(), "rejected bearer token", "error", err, "path", r.URL.Path)
				WriteAPIError(w, http.StatusUnauthorized, CodeInvalidToken, "Invalid token", nil)
				return
			default:
				slog.ErrorContext(r.Context(), "token verification failed", "error", err)
				WriteAPIError(w, http.StatusInternalServerError, CodeInternalError, "Token verification failed", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAuthenticated rejects requests without verified claims.
// Use it after RequireToken.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaims(r) == nil {
			WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Use it after RequireToken.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r)
		if claims == nil {
			WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
			return
		}
		if !claims.IsAdmin() {
			slog.WarnContext(r.Context(), "admin access denied", "user_id", claims.UserID, "role", claims.Role, "path", r.URL.Path)
			WriteAPIError(w, http.StatusForbidden, CodeForbidden, "Admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithClaims stores verified claims in ctx and tags log records with the user.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClaims, claims)
	return logging.WithUserID(ctx, claims.UserID)
}

// GetClaims retrieves the verified claims from the request context.
// Returns nil if the request is not authenticated.
func GetClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(ContextKeyClaims).(*auth.Claims)
	return claims
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
