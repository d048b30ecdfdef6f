// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/sitekit/internal/model"
)

// DashboardCounts holds the headline numbers for the admin dashboard.
type DashboardCounts struct {
	Blogs            int64 `db:"blogs" json:"blogs"`
	PublishedBlogs   int64 `db:"published_blogs" json:"publishedBlogs"`
	DraftBlogs       int64 `db:"draft_blogs" json:"draftBlogs"`
	Projects         int64 `db:"projects" json:"projects"`
	FeaturedProjects int64 `db:"featured_projects" json:"featuredProjects"`
	Contacts         int64 `db:"contacts" json:"contacts"`
	NewContacts      int64 `db:"new_contacts" json:"newContacts"`
	Users            int64 `db:"users" json:"users"`
}

// GetDashboardCounts gathers all dashboard counters in a single query.
func (q *Queries) GetDashboardCounts(ctx context.Context) (DashboardCounts, error) {
	var c DashboardCounts
	err := q.db.GetContext(ctx, &c, `
		SELECT
			(SELECT COUNT(*) FROM blogs) AS blogs,
			(SELECT COUNT(*) FROM blogs WHERE status = ?) AS published_blogs,
			(SELECT COUNT(*) FROM blogs WHERE status = ?) AS draft_blogs,
			(SELECT COUNT(*) FROM projects) AS projects,
			(SELECT COUNT(*) FROM projects WHERE featured = 1) AS featured_projects,
			(SELECT COUNT(*) FROM contacts) AS contacts,
			(SELECT COUNT(*) FROM contacts WHERE status = ?) AS new_contacts,
			(SELECT COUNT(*) FROM users) AS users`,
		model.BlogStatusPublished, model.BlogStatusDraft, model.ContactStatusNew)
	if err != nil {
		return c, fmt.Errorf("loading dashboard counts: %w", err)
	}
	return c, nil
}
