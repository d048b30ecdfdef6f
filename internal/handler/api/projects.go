// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/validation"
)

func projectFromInput(in validation.ProjectInput, now time.Time) model.Project {
	bars := make(model.List[model.GraphBar], 0, len(in.GraphData.Bars))
	for _, b := range in.GraphData.Bars {
		bars = append(bars, model.GraphBar{Label: b.Label, Value: b.Value, Color: b.Color, Unit: b.Unit})
	}

	return model.Project{
		Title:        in.Title,
		Slug:         in.Slug,
		Client:       in.Client,
		Category:     in.Category,
		Description:  in.Description,
		Image:        in.Image,
		Technologies: model.List[string](in.Technologies),
		Duration:     in.Duration,
		Team:         in.Team,
		Status:       in.Status,
		Featured:     in.Featured,
		Results:      model.List[string](in.Results),
		GraphData: model.GraphData{
			Title:       in.GraphData.Title,
			Bars:        bars,
			Explanation: in.GraphData.Explanation,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	listPage(w, r, "project",
		func(f store.ListFilter) ([]model.Project, error) { return h.queries.ListProjects(r.Context(), f) },
		func(f store.ListFilter) (int64, error) { return h.queries.CountProjects(r.Context(), f) },
	)
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := requireEntityByID(w, r, "project", func(id int64) (model.Project, error) {
		return h.queries.GetProjectByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, project)
}

// GetProjectBySlug handles GET /api/projects/slug/{slug}.
func (h *Handler) GetProjectBySlug(w http.ResponseWriter, r *http.Request) {
	project, err := h.queries.GetProjectBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, r, err, "project", "retrieve")
		return
	}
	WriteSuccess(w, project)
}

// CreateProject handles POST /api/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in validation.ProjectInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	project, err := h.queries.CreateProject(r.Context(), projectFromInput(in, h.now()))
	if err != nil {
		writeStoreError(w, r, err, "project", "create")
		return
	}
	WriteCreated(w, project, "Project created successfully")
}

// UpdateProject handles PUT /api/projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIDParam(w, r, "project")
	if !ok {
		return
	}

	var in validation.ProjectInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	p := projectFromInput(in, h.now())
	p.ID = id
	project, err := h.queries.UpdateProject(r.Context(), p)
	if err != nil {
		writeStoreError(w, r, err, "project", "update")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: project, Message: "Project updated successfully"})
}

// DeleteProject handles DELETE /api/projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIDParam(w, r, "project")
	if !ok {
		return
	}

	if err := h.queries.DeleteProject(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "project", "delete")
		return
	}
	WriteMessage(w, "Project deleted successfully")
}
