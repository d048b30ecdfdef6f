// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/sitekit/internal/model"
)

const blogColumns = `id, title, slug, content, excerpt, author, author_bio, author_image,
	category, tags, status, publish_date, featured_image, reading_time,
	seo_title, seo_description, seo_keywords, og_image, canonical_url,
	views, likes, comments, related_posts, is_featured, is_breaking,
	created_at, updated_at`

var blogSearchColumns = []string{"title", "content", "excerpt"}

// ListBlogs returns blog posts matching the filter, newest first.
func (q *Queries) ListBlogs(ctx context.Context, f ListFilter) ([]model.BlogPost, error) {
	w := buildWhere(f, "is_featured", blogSearchColumns...)
	query, args := paginate(`SELECT `+blogColumns+` FROM blogs`+w.String(), "created_at", f, w.args)

	posts := []model.BlogPost{}
	if err := q.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return posts, nil
}

// CountBlogs returns the number of blog posts matching the filter.
// Limit and Offset are ignored.
func (q *Queries) CountBlogs(ctx context.Context, f ListFilter) (int64, error) {
	w := buildWhere(f, "is_featured", blogSearchColumns...)
	return q.count(ctx, `SELECT COUNT(*) FROM blogs`+w.String(), w.args...)
}

// GetBlogByID returns a blog post by id.
func (q *Queries) GetBlogByID(ctx context.Context, id int64) (model.BlogPost, error) {
	return getOne[model.BlogPost](ctx, q.db, `SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id)
}

// GetBlogBySlug returns a blog post by slug.
func (q *Queries) GetBlogBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	return getOne[model.BlogPost](ctx, q.db, `SELECT `+blogColumns+` FROM blogs WHERE slug = ?`, slug)
}

// CreateBlog inserts a post and returns the stored row. Counters start at
// zero regardless of the values on p.
func (q *Queries) CreateBlog(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	res, err := q.db.NamedExecContext(ctx, `
		INSERT INTO blogs (title, slug, content, excerpt, author, author_bio, author_image,
			category, tags, status, publish_date, featured_image, reading_time,
			seo_title, seo_description, seo_keywords, og_image, canonical_url,
			related_posts, is_featured, is_breaking, created_at, updated_at)
		VALUES (:title, :slug, :content, :excerpt, :author, :author_bio, :author_image,
			:category, :tags, :status, :publish_date, :featured_image, :reading_time,
			:seo_title, :seo_description, :seo_keywords, :og_image, :canonical_url,
			:related_posts, :is_featured, :is_breaking, :created_at, :updated_at)`, p)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("inserting blog: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("reading blog id: %w", err)
	}
	return q.GetBlogByID(ctx, id)
}

// UpdateBlog overwrites the editable fields of p.ID and returns the
// refreshed row. Counters and created_at are left untouched.
func (q *Queries) UpdateBlog(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	res, err := q.db.NamedExecContext(ctx, `
		UPDATE blogs SET
			title = :title, slug = :slug, content = :content, excerpt = :excerpt,
			author = :author, author_bio = :author_bio, author_image = :author_image,
			category = :category, tags = :tags, status = :status,
			publish_date = :publish_date, featured_image = :featured_image,
			reading_time = :reading_time, seo_title = :seo_title,
			seo_description = :seo_description, seo_keywords = :seo_keywords,
			og_image = :og_image, canonical_url = :canonical_url,
			related_posts = :related_posts, is_featured = :is_featured,
			is_breaking = :is_breaking, updated_at = :updated_at
		WHERE id = :id`, p)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("updating blog: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return model.BlogPost{}, err
	}
	return q.GetBlogByID(ctx, p.ID)
}

// DeleteBlog removes a blog post.
func (q *Queries) DeleteBlog(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting blog: %w", err)
	}
	return requireAffected(res)
}

// IncrementBlogViews bumps the view counter and returns the new value.
func (q *Queries) IncrementBlogViews(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE blogs SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("incrementing views: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return 0, err
	}
	return q.count(ctx, `SELECT views FROM blogs WHERE id = ?`, id)
}

// RecentBlogs returns the n most recently created posts.
func (q *Queries) RecentBlogs(ctx context.Context, n int) ([]model.BlogPost, error) {
	return q.ListBlogs(ctx, ListFilter{Limit: n})
}
