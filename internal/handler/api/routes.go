// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/sitekit/internal/middleware"
)

// Routes builds the /api router. mws run before every route, after which
// each group applies its own auth requirements.
func (h *Handler) Routes(mws ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mws...)
	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	requireToken := middleware.RequireToken(h.tokens)

	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		if h.login != nil {
			r.With(h.login.Middleware()).Post("/login", h.Login)
		} else {
			r.Post("/login", h.Login)
		}

		r.Group(func(r chi.Router) {
			r.Use(requireToken, middleware.RequireAuthenticated)
			r.Get("/verify", h.Verify)
			r.Get("/me", h.Verify)
			r.Post("/logout", h.Logout)
		})
	})

	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", h.ListBlogs)
		r.Get("/slug/{slug}", h.GetBlogBySlug)
		r.Get("/{id}", h.GetBlog)
		r.Post("/{id}/view", h.RecordBlogView)

		r.Group(func(r chi.Router) {
			r.Use(requireToken, middleware.RequireAdmin)
			r.Post("/", h.CreateBlog)
			r.Put("/{id}", h.UpdateBlog)
			r.Delete("/{id}", h.DeleteBlog)
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Get("/slug/{slug}", h.GetProjectBySlug)
		r.Get("/{id}", h.GetProject)

		r.Group(func(r chi.Router) {
			r.Use(requireToken, middleware.RequireAdmin)
			r.Post("/", h.CreateProject)
			r.Put("/{id}", h.UpdateProject)
			r.Delete("/{id}", h.DeleteProject)
		})
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", h.SubmitContact)

		r.Group(func(r chi.Router) {
			r.Use(requireToken, middleware.RequireAdmin)
			r.Get("/", h.ListContacts)
			r.Get("/{id}", h.GetContact)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(requireToken)

		r.With(middleware.RequireAdmin).Get("/", h.ListUsers)
		r.With(middleware.RequireAdmin).Post("/admin", h.CreateAdmin)
		r.With(middleware.RequireAuthenticated).Put("/me/password", h.ChangePassword)
		r.With(middleware.RequireAuthenticated).Put("/me/profile", h.UpdateProfile)
	})

	r.With(requireToken, middleware.RequireAuthenticated).Get("/dashboard/summary", h.Dashboard)

	return r
}
