// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/store"
)

// DashboardSummary is the admin dashboard payload.
type DashboardSummary struct {
	Counts         store.DashboardCounts `json:"counts"`
	RecentBlogs    []model.BlogPost      `json:"recentBlogs"`
	RecentProjects []model.Project       `json:"recentProjects"`
	RecentContacts []model.Contact       `json:"recentContacts"`
}

// Dashboard handles GET /api/dashboard/summary. Nothing is cached.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.queries.GetDashboardCounts(ctx)
	if err != nil {
		writeStoreError(w, r, err, "dashboard", "load")
		return
	}
	blogs, err := h.queries.RecentBlogs(ctx, recentItems)
	if err != nil {
		writeStoreError(w, r, err, "dashboard", "load")
		return
	}
	projects, err := h.queries.RecentProjects(ctx, recentItems)
	if err != nil {
		writeStoreError(w, r, err, "dashboard", "load")
		return
	}
	contacts, err := h.queries.RecentContacts(ctx, recentItems)
	if err != nil {
		writeStoreError(w, r, err, "dashboard", "load")
		return
	}

	WriteSuccess(w, DashboardSummary{
		Counts:         counts,
		RecentBlogs:    nonNil(blogs),
		RecentProjects: nonNil(projects),
		RecentContacts: nonNil(contacts),
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
