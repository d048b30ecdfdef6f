// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/sitekit/internal/metrics"
	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/store"
	"github.com/olegiv/sitekit/internal/validation"
)

// SubmitContact handles the public POST /api/contacts.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in validation.ContactInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	contact, err := h.queries.CreateContact(r.Context(), model.Contact{
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Email:              in.Email,
		Phone:              in.Phone,
		Company:            in.Company,
		Position:           in.Position,
		ServiceType:        in.ServiceType,
		ProjectDescription: in.ProjectDescription,
		Budget:             in.Budget,
		Timeline:           in.Timeline,
		AdditionalInfo:     in.AdditionalInfo,
		Status:             model.ContactStatusNew,
		SubmittedAt:        h.now(),
	})
	if err != nil {
		writeStoreError(w, r, err, "contact", "create")
		return
	}

	metrics.RecordContactSubmission()
	slog.InfoContext(r.Context(), "contact form submitted", "contact_id", contact.ID, "name", contact.FullName())

	WriteCreated(w, contact, "Contact form submitted successfully")
}

// ListContacts handles GET /api/contacts.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	listPage(w, r, "contact",
		func(f store.ListFilter) ([]model.Contact, error) { return h.queries.ListContacts(r.Context(), f) },
		func(f store.ListFilter) (int64, error) { return h.queries.CountContacts(r.Context(), f) },
	)
}

// GetContact handles GET /api/contacts/{id}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	contact, ok := requireEntityByID(w, r, "contact", func(id int64) (model.Contact, error) {
		return h.queries.GetContactByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, contact)
}
