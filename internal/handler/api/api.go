// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON REST handlers for the site backend.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/olegiv/sitekit/internal/auth"
	"github.com/olegiv/sitekit/internal/middleware"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/validation"
	"github.com/olegiv/sitekit/internal/version"
)

// Pagination defaults.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	recentItems      = 5
	maxBodyBytes     = 1 << 20
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	queries *store.Queries
	tokens  *auth.TokenManager
	login   *middleware.LoginProtection
	version string
	started time.Time
	now     func() time.Time
}

// Config wires a Handler.
type Config struct {
	DB     *sqlx.DB
	Tokens *auth.TokenManager
	// LoginProtection is optional; without it login is not throttled.
	LoginProtection *middleware.LoginProtection
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	clock := cfg.Now
	if clock == nil {
		clock = time.Now
	}
	// Timestamps are stored as text and sorted lexically, so every write
	// must use the same offset.
	now := func() time.Time { return clock().UTC() }
	return &Handler{
		queries: store.New(cfg.DB),
		tokens:  cfg.Tokens,
		login:   cfg.LoginProtection,
		version: version.Get().Version,
		started: now(),
		now:     now,
	}
}

// Response is the standard success envelope.
type Response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Pagination describes the window returned by a list endpoint.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func newPagination(page, limit int, total int64) *Pagination {
	return &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 response carrying data.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// WriteCreated writes a 201 Created response.
func WriteCreated(w http.ResponseWriter, data any, message string) {
	WriteJSON(w, http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// WriteList writes a page of results with its pagination block.
func WriteList(w http.ResponseWriter, data any, p *Pagination) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data, Pagination: p})
}

// WriteMessage writes a 200 response carrying only a message.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusBadRequest, middleware.CodeBadRequest, message, nil)
}

// WriteValidationError writes a 400 response listing every field violation.
func WriteValidationError(w http.ResponseWriter, errs validation.Errors) {
	middleware.WriteAPIError(w, http.StatusBadRequest, middleware.CodeValidationFailed, "Validation failed", errs)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusNotFound, middleware.CodeNotFound, message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusConflict, middleware.CodeConflict, message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusInternalServerError, middleware.CodeInternalError, message, nil)
}

// writeStoreError maps a storage failure to a response: missing rows become
// 404, unique violations 409 and everything else a logged 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, entity, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, capitalizeFirst(entity)+" not found")
	case store.IsUniqueViolation(err):
		field := "slug"
		if entity == "user" {
			field = "username"
		}
		WriteConflict(w, capitalizeFirst(entity)+" with this "+field+" already exists")
	default:
		slog.ErrorContext(r.Context(), "storage failure", "entity", entity, "action", action, "error", err)
		WriteInternalError(w, "Failed to "+action+" "+entity)
	}
}

// decodeAndValidate reads a JSON body into dst and validates it.
// Returns false after writing the error response.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			WriteBadRequest(w, "Request body is required")
		case errors.As(err, &maxErr):
			WriteBadRequest(w, "Request body too large")
		default:
			WriteBadRequest(w, "Invalid JSON body")
		}
		return false
	}

	if errs := validation.Struct(dst); len(errs) > 0 {
		WriteValidationError(w, errs)
		return false
	}
	return true
}

// requireIDParam parses the {id} URL parameter. An id that is not an
// integer cannot match any row, so it gets the same 404 as a missing one.
// Returns false after writing the error response.
func requireIDParam(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteNotFound(w, capitalizeFirst(entity)+" not found")
		return 0, false
	}
	return id, true
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true if successful, or zero value and false if error (response written).
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entity string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, ok := requireIDParam(w, r, entity)
	if !ok {
		return zero, false
	}

	item, err := fetch(id)
	if err != nil {
		writeStoreError(w, r, err, entity, "retrieve")
		return zero, false
	}
	return item, true
}

// listQuery holds the parsed list query string.
type listQuery struct {
	page   int
	limit  int
	filter store.ListFilter
}

// parseListQuery reads page, limit, status, q, category and featured.
// Out-of-range paging values fall back to defaults.
func parseListQuery(r *http.Request) listQuery {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	limit = min(limit, MaxPageLimit)

	f := store.ListFilter{
		Status:   strings.TrimSpace(q.Get("status")),
		Search:   strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if f.Search == "" {
		f.Search = strings.TrimSpace(q.Get("search"))
	}
	if v, err := strconv.ParseBool(q.Get("featured")); err == nil {
		f.Featured = &v
	}

	return listQuery{page: page, limit: limit, filter: f}
}

// listPage runs a list and its count query and writes the page.
func listPage[T any](w http.ResponseWriter, r *http.Request, entity string,
	list func(store.ListFilter) ([]T, error), count func(store.ListFilter) (int64, error)) {
	lq := parseListQuery(r)

	items, err := list(lq.filter)
	if err != nil {
		writeStoreError(w, r, err, entity, "list")
		return
	}
	total, err := count(lq.filter)
	if err != nil {
		writeStoreError(w, r, err, entity, "count")
		return
	}
	if items == nil {
		items = []T{}
	}

	WriteList(w, items, newPagination(lq.page, lq.limit, total))
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
