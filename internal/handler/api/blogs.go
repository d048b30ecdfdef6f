// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/util"
	"github.com/olegiv/sitekit/internal/validation"
)

// ViewsResponse is returned after a blog view is recorded.
type ViewsResponse struct {
	ID    int64 `json:"id"`
	Views int64 `json:"views"`
}

// blogFromInput builds the row for a validated payload. Content is
// sanitised and a published post without a date is dated now.
func blogFromInput(in validation.BlogInput, now time.Time) model.BlogPost {
	p := model.BlogPost{
		Title:          in.Title,
		Slug:           in.Slug,
		Content:        util.SanitizeHTML(in.Content),
		Excerpt:        in.Excerpt,
		Author:         in.Author,
		AuthorBio:      in.AuthorBio,
		AuthorImage:    in.AuthorImage,
		Category:       in.Category,
		Tags:           model.List[string](in.Tags),
		Status:         in.Status,
		PublishDate:    in.PublishDate,
		FeaturedImage:  in.FeaturedImage,
		ReadingTime:    in.ReadingTime,
		SEOTitle:       in.SEOTitle,
		SEODescription: in.SEODescription,
		SEOKeywords:    model.List[string](in.SEOKeywords),
		OGImage:        in.OGImage,
		CanonicalURL:   in.CanonicalURL,
		RelatedPosts:   model.List[int64](in.RelatedPosts),
		IsFeatured:     in.IsFeatured,
		IsBreaking:     in.IsBreaking,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Status == model.BlogStatusPublished && p.PublishDate == nil {
		p.PublishDate = &now
	}
	return p
}

// ListBlogs handles GET /api/blogs.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	listPage(w, r, "blog",
		func(f store.ListFilter) ([]model.BlogPost, error) { return h.queries.ListBlogs(r.Context(), f) },
		func(f store.ListFilter) (int64, error) { return h.queries.CountBlogs(r.Context(), f) },
	)
}

// GetBlog handles GET /api/blogs/{id}.
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "blog", func(id int64) (model.BlogPost, error) {
		return h.queries.GetBlogByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, post)
}

// GetBlogBySlug handles GET /api/blogs/slug/{slug}.
func (h *Handler) GetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.queries.GetBlogBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, r, err, "blog", "retrieve")
		return
	}
	WriteSuccess(w, post)
}

// CreateBlog handles POST /api/blogs.
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var in validation.BlogInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	post, err := h.queries.CreateBlog(r.Context(), blogFromInput(in, h.now()))
	if err != nil {
		writeStoreError(w, r, err, "blog", "create")
		return
	}
	WriteCreated(w, post, "Blog created successfully")
}

// UpdateBlog handles PUT /api/blogs/{id}.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIDParam(w, r, "blog")
	if !ok {
		return
	}

	var in validation.BlogInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	p := blogFromInput(in, h.now())
	p.ID = id
	post, err := h.queries.UpdateBlog(r.Context(), p)
	if err != nil {
		writeStoreError(w, r, err, "blog", "update")
		return
	}
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: post, Message: "Blog updated successfully"})
}

// DeleteBlog handles DELETE /api/blogs/{id}.
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIDParam(w, r, "blog")
	if !ok {
		return
	}

	if err := h.queries.DeleteBlog(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "blog", "delete")
		return
	}
	WriteMessage(w, "Blog deleted successfully")
}

// RecordBlogView handles POST /api/blogs/{id}/view.
func (h *Handler) RecordBlogView(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIDParam(w, r, "blog")
	if !ok {
		return
	}

	views, err := h.queries.IncrementBlogViews(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "blog", "update")
		return
	}
	WriteSuccess(w, ViewsResponse{ID: id, Views: views})
}
