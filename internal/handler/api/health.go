// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Health statuses.
const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
}

// Health handles GET /api/health. A failed database ping reports 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	resp := HealthResponse{
		Status:    HealthStatusOK,
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.started).Seconds(),
		Version:   h.version,
		Database:  "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.queries.Ping(ctx); err != nil {
		slog.ErrorContext(r.Context(), "health check database ping failed", "error", err)
		resp.Status = HealthStatusDegraded
		resp.Database = "unavailable"
		WriteJSON(w, http.StatusServiceUnavailable, Response{Success: false, Data: resp})
		return
	}

	WriteSuccess(w, resp)
}
