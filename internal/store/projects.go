// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/sitekit/internal/model"
)

const projectColumns = `id, title, slug, client, category, description, image,
	technologies, duration, team, status, featured, results, graph_data,
	created_at, updated_at`

var projectSearchColumns = []string{"title", "description", "client"}

// ListProjects returns projects matching the filter, newest first.
func (q *Queries) ListProjects(ctx context.Context, f ListFilter) ([]model.Project, error) {
	w := buildWhere(f, "featured", projectSearchColumns...)
	query, args := paginate(`SELECT `+projectColumns+` FROM projects`+w.String(), "created_at", f, w.args)

	projects := []model.Project{}
	if err := q.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// CountProjects returns the number of projects matching the filter.
func (q *Queries) CountProjects(ctx context.Context, f ListFilter) (int64, error) {
	w := buildWhere(f, "featured", projectSearchColumns...)
	return q.count(ctx, `SELECT COUNT(*) FROM projects`+w.String(), w.args...)
}

// GetProjectByID returns a project by id.
func (q *Queries) GetProjectByID(ctx context.Context, id int64) (model.Project, error) {
	return getOne[model.Project](ctx, q.db, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
}

// GetProjectBySlug returns a project by slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (model.Project, error) {
	return getOne[model.Project](ctx, q.db, `SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
}

// CreateProject inserts a project and returns the stored row.
func (q *Queries) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	res, err := q.db.NamedExecContext(ctx, `
		INSERT INTO projects (title, slug, client, category, description, image,
			technologies, duration, team, status, featured, results, graph_data,
			created_at, updated_at)
		VALUES (:title, :slug, :client, :category, :description, :image,
			:technologies, :duration, :team, :status, :featured, :results, :graph_data,
			:created_at, :updated_at)`, p)
	if err != nil {
		return model.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, fmt.Errorf("reading project id: %w", err)
	}
	return q.GetProjectByID(ctx, id)
}

// UpdateProject overwrites the editable fields of p.ID and returns the
// refreshed row.
func (q *Queries) UpdateProject(ctx context.Context, p model.Project) (model.Project, error) {
	res, err := q.db.NamedExecContext(ctx, `
		UPDATE projects SET
			title = :title, slug = :slug, client = :client, category = :category,
			description = :description, image = :image, technologies = :technologies,
			duration = :duration, team = :team, status = :status, featured = :featured,
			results = :results, graph_data = :graph_data, updated_at = :updated_at
		WHERE id = :id`, p)
	if err != nil {
		return model.Project{}, fmt.Errorf("updating project: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return model.Project{}, err
	}
	return q.GetProjectByID(ctx, p.ID)
}

// DeleteProject removes a project.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res)
}

// RecentProjects returns the n most recently created projects.
func (q *Queries) RecentProjects(ctx context.Context, n int) ([]model.Project, error) {
	return q.ListProjects(ctx, ListFilter{Limit: n})
}
