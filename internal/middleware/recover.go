// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer converts panics into a JSON 500 carrying the panic message.
// The stack trace is logged always and included in the body only when
// exposeStack is set.
func Recoverer(exposeStack bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}

				stack := string(debug.Stack())
				msg := fmt.Sprint(p)
				slog.ErrorContext(r.Context(), "panic recovered",
					"panic", msg,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", stack,
				)

				apiErr := APIError{Error: msg, Code: CodeInternalError}
				if exposeStack {
					apiErr.Stack = stack
				}
				writeAPIError(w, http.StatusInternalServerError, apiErr)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
