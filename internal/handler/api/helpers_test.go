// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitekit/internal/auth"
	"github.com/olegiv/sitekit/internal/middleware"
	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/testutil"
)

const testJWTSecret = "handler-test-Secret-0123456789abcdef"

// stepClock returns a strictly increasing time on every call so rows
// created in sequence have distinct created_at values.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type testEnv struct {
	db      *sqlx.DB
	queries *store.Queries
	tokens  *auth.TokenManager
	handler *Handler
	router  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestDB(t)
	require.NoError(t, store.Seed(context.Background(), db, store.SeedOptions{}))

	login := middleware.NewLoginProtection(middleware.LoginProtectionConfig{IPRateLimit: 1000, IPBurst: 1000})
	t.Cleanup(login.Stop)

	tokens := auth.NewTokenManager(testJWTSecret, time.Hour)
	clock := &stepClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	h := NewHandler(Config{DB: db, Tokens: tokens, LoginProtection: login, Now: clock.Now})

	return &testEnv{
		db:      db,
		queries: store.New(db),
		tokens:  tokens,
		handler: h,
		router:  h.Routes(),
	}
}

// adminToken returns a token for the seeded admin.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	user, err := e.queries.GetUserByUsername(context.Background(), store.DefaultAdminUsername)
	require.NoError(t, err)
	return e.tokenFor(t, user)
}

func (e *testEnv) tokenFor(t *testing.T, user model.User) string {
	t.Helper()
	token, _, err := e.tokens.Issue(user)
	require.NoError(t, err)
	return token
}

// do sends a request through the router. body may be a string or any
// value, which is JSON encoded.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors Response with a typed data field.
type envelope[T any] struct {
	Success    bool        `json:"success"`
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination"`
	Message    string      `json:"message"`
}

type errorEnvelope struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []map[string]string `json:"details"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	require.False(t, env.Success)
	return env
}

// requireError asserts status and error code.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) errorEnvelope {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	env := decodeError(t, rec)
	require.Equal(t, code, env.Code)
	return env
}

func fieldNames(env errorEnvelope) []string {
	names := make([]string, 0, len(env.Details))
	for _, d := range env.Details {
		names = append(names, d["field"])
	}
	return names
}

func newRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
