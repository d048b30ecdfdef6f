// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitekit/internal/middleware"
	"github.com/olegiv/sitekit/internal/model"
)

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/contacts", map[string]any{
		"first_name":          "<b>Ada</b>",
		"last_name":           "Lovelace",
		"email":               "  Ada@Example.COM ",
		"company":             "Analytical <script>alert(1)</script>Engines",
		"project_description": "Need a <i>difference</i> engine",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	c := decode[model.Contact](t, rec).Data
	assert.Equal(t, "Ada", c.FirstName)
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, "Analytical Engines", c.Company)
	assert.Equal(t, "Need a difference engine", c.ProjectDescription)
	assert.Equal(t, model.ContactStatusNew, c.Status)
	assert.False(t, c.SubmittedAt.IsZero())
}

func TestSubmitContact_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/contacts", map[string]any{"email": "not-an-email"}, "")
	errEnv := requireError(t, rec, http.StatusBadRequest, middleware.CodeValidationFailed)
	assert.ElementsMatch(t, []string{"first_name", "email"}, fieldNames(errEnv))
}

func TestContactsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	for _, name := range []string{"Grace", "Alan", "Barbara"} {
		rec := env.do(t, http.MethodPost, "/contacts", map[string]any{"first_name": name, "email": name + "@example.com"}, "")
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	requireError(t, env.do(t, http.MethodGet, "/contacts", nil, ""), http.StatusUnauthorized, middleware.CodeMissingToken)

	resp := decode[[]model.Contact](t, env.do(t, http.MethodGet, "/contacts?limit=2", nil, token))
	assert.Equal(t, Pagination{Page: 1, Limit: 2, Total: 3, Pages: 2}, *resp.Pagination)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Barbara", resp.Data[0].FirstName)

	resp = decode[[]model.Contact](t, env.do(t, http.MethodGet, "/contacts?q=alan", nil, token))
	require.Len(t, resp.Data, 1)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/contacts/%d", resp.Data[0].ID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alan", decode[model.Contact](t, rec).Data.FirstName)

	requireError(t, env.do(t, http.MethodGet, "/contacts/404", nil, token), http.StatusNotFound, middleware.CodeNotFound)
}
