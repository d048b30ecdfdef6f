// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ContactStatusNew is the status given to every fresh submission.
const ContactStatusNew = "new"

// Contact is a submission from the public contact/apply form.
type Contact struct {
	ID                 int64     `db:"id" json:"id"`
	FirstName          string    `db:"first_name" json:"first_name"`
	LastName           string    `db:"last_name" json:"last_name"`
	Email              string    `db:"email" json:"email"`
	Phone              string    `db:"phone" json:"phone"`
	Company            string    `db:"company" json:"company"`
	Position           string    `db:"position" json:"position"`
	ServiceType        string    `db:"service_type" json:"service_type"`
	ProjectDescription string    `db:"project_description" json:"project_description"`
	Budget             string    `db:"budget" json:"budget"`
	Timeline           string    `db:"timeline" json:"timeline"`
	AdditionalInfo     string    `db:"additional_info" json:"additional_info"`
	Status             string    `db:"status" json:"status"`
	SubmittedAt        time.Time `db:"submitted_at" json:"submitted_at"`
}

// FullName returns the submitter's first and last name.
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
