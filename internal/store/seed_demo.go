// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/sitekit/internal/model"
)

// SeedDemo inserts sample blog posts and projects. Each table is only
// seeded while empty, so repeated runs are no-ops.
func SeedDemo(ctx context.Context, queries *Queries) error {
	slog.Info("seeding demo content")

	if err := seedDemoBlogs(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo blogs: %w", err)
	}
	if err := seedDemoProjects(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo projects: %w", err)
	}

	slog.Info("demo content seeded successfully")
	return nil
}

func seedDemoBlogs(ctx context.Context, queries *Queries) error {
	count, err := queries.CountBlogs(ctx, ListFilter{})
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("blogs already exist, skipping demo blogs")
		return nil
	}

	posts := getDemoBlogs()
	now := time.Now().UTC()
	for i, p := range posts {
		created := now.Add(-time.Duration(len(posts)-i) * 24 * time.Hour)
		p.CreatedAt = created
		p.UpdatedAt = created
		if p.Status == model.BlogStatusPublished {
			published := created
			p.PublishDate = &published
		}
		if _, err := queries.CreateBlog(ctx, p); err != nil {
			return fmt.Errorf("creating blog %s: %w", p.Slug, err)
		}
	}

	slog.Info("seeded demo blogs", "count", len(posts))
	return nil
}

func seedDemoProjects(ctx context.Context, queries *Queries) error {
	count, err := queries.CountProjects(ctx, ListFilter{})
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("projects already exist, skipping demo projects")
		return nil
	}

	projects := getDemoProjects()
	now := time.Now().UTC()
	for i, p := range projects {
		created := now.Add(-time.Duration(len(projects)-i) * 24 * time.Hour)
		p.CreatedAt = created
		p.UpdatedAt = created
		if _, err := queries.CreateProject(ctx, p); err != nil {
			return fmt.Errorf("creating project %s: %w", p.Slug, err)
		}
	}

	slog.Info("seeded demo projects", "count", len(projects))
	return nil
}

func getDemoBlogs() []model.BlogPost {
	return []model.BlogPost{
		{
			Title:       "Why We Moved Our Reporting Stack to the Cloud",
			Slug:        "why-we-moved-reporting-to-the-cloud",
			Content:     "<p>Our reporting jobs used to run overnight on a single server. Moving them to managed infrastructure cut turnaround from hours to minutes.</p><p>This post walks through the migration plan, the surprises, and what we would do differently.</p>",
			Excerpt:     "How a nightly reporting bottleneck became a same-hour dashboard.",
			Author:      "Maria Lopez",
			AuthorBio:   "Head of Engineering",
			Category:    "Engineering",
			Tags:        model.List[string]{"cloud", "reporting", "migration"},
			Status:      model.BlogStatusPublished,
			ReadingTime: 4,
			SEOTitle:    "Moving reporting to the cloud",
			SEOKeywords: model.List[string]{"cloud migration", "reporting"},
			IsFeatured:  true,
		},
		{
			Title:       "Five Questions to Ask Before Starting a Website Redesign",
			Slug:        "five-questions-before-a-redesign",
			Content:     "<p>A redesign is a chance to fix more than colours. Start with your audience, your goals and the content you already have.</p>",
			Excerpt:     "A short checklist for planning a redesign that pays off.",
			Author:      "Daniel Kim",
			Category:    "Design",
			Tags:        model.List[string]{"design", "planning"},
			Status:      model.BlogStatusPublished,
			ReadingTime: 3,
		},
		{
			Title:       "Notes From Our Data Privacy Workshop",
			Slug:        "notes-from-data-privacy-workshop",
			Content:     "<p>Draft notes from the internal workshop on handling customer data.</p>",
			Excerpt:     "Takeaways from our privacy workshop.",
			Author:      "Maria Lopez",
			Category:    "Compliance",
			Tags:        model.List[string]{"privacy"},
			Status:      model.BlogStatusDraft,
			ReadingTime: 1,
		},
	}
}

func getDemoProjects() []model.Project {
	return []model.Project{
		{
			Title:        "Retail Analytics Platform",
			Slug:         "retail-analytics-platform",
			Client:       "Northwind Stores",
			Category:     "Data",
			Description:  "A unified analytics platform combining point-of-sale and online order data.",
			Technologies: model.List[string]{"Go", "PostgreSQL", "React"},
			Duration:     "6 months",
			Team:         "5 engineers",
			Status:       model.ProjectStatusCompleted,
			Featured:     true,
			Results:      model.List[string]{"Reports delivered daily instead of weekly", "30% less manual data entry"},
			GraphData: model.GraphData{
				Title: "Report turnaround (hours)",
				Bars: model.List[model.GraphBar]{
					{Label: "Before", Value: 48, Color: "#ef4444", Unit: "h"},
					{Label: "After", Value: 2, Color: "#22c55e", Unit: "h"},
				},
				Explanation: "Time from store close to report availability.",
			},
		},
		{
			Title:        "Clinic Booking Portal",
			Slug:         "clinic-booking-portal",
			Client:       "Green Valley Health",
			Category:     "Web",
			Description:  "Online appointment booking with reminders and staff scheduling.",
			Technologies: model.List[string]{"Go", "SQLite", "Vue"},
			Duration:     "3 months",
			Team:         "3 engineers",
			Status:       model.ProjectStatusActive,
			Results:      model.List[string]{"Phone bookings down 40%"},
			GraphData:    model.GraphData{Bars: model.List[model.GraphBar]{}},
		},
	}
}
