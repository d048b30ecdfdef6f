// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/sitekit/internal/model"
)

const contactColumns = `id, first_name, last_name, email, phone, company, position,
	service_type, project_description, budget, timeline, additional_info,
	status, submitted_at`

var contactSearchColumns = []string{"first_name", "last_name", "email", "company"}

// ListContacts returns submissions matching the filter, newest first.
// Contacts have no category column, so f.Category and f.Featured are ignored.
func (q *Queries) ListContacts(ctx context.Context, f ListFilter) ([]model.Contact, error) {
	w := contactWhere(f)
	query, args := paginate(`SELECT `+contactColumns+` FROM contacts`+w.String(), "submitted_at", f, w.args)

	contacts := []model.Contact{}
	if err := q.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	return contacts, nil
}

// CountContacts returns the number of submissions matching the filter.
func (q *Queries) CountContacts(ctx context.Context, f ListFilter) (int64, error) {
	w := contactWhere(f)
	return q.count(ctx, `SELECT COUNT(*) FROM contacts`+w.String(), w.args...)
}

func contactWhere(f ListFilter) *whereClause {
	f.Category = ""
	return buildWhere(f, "", contactSearchColumns...)
}

// GetContactByID returns a submission by id.
func (q *Queries) GetContactByID(ctx context.Context, id int64) (model.Contact, error) {
	return getOne[model.Contact](ctx, q.db, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)
}

// CreateContact stores a submission and returns the stored row.
func (q *Queries) CreateContact(ctx context.Context, c model.Contact) (model.Contact, error) {
	res, err := q.db.NamedExecContext(ctx, `
		INSERT INTO contacts (first_name, last_name, email, phone, company, position,
			service_type, project_description, budget, timeline, additional_info,
			status, submitted_at)
		VALUES (:first_name, :last_name, :email, :phone, :company, :position,
			:service_type, :project_description, :budget, :timeline, :additional_info,
			:status, :submitted_at)`, c)
	if err != nil {
		return model.Contact{}, fmt.Errorf("inserting contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Contact{}, fmt.Errorf("reading contact id: %w", err)
	}
	return q.GetContactByID(ctx, id)
}

// RecentContacts returns the n most recent submissions.
func (q *Queries) RecentContacts(ctx context.Context, n int) ([]model.Contact, error) {
	return q.ListContacts(ctx, ListFilter{Limit: n})
}
