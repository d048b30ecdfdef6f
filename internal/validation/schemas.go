// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

import (
	"strings"
	"time"

	"github.com/olegiv/sitekit/internal/model"
	"github.com/olegiv/sitekit/internal/util"
)

// BlogInput is the create/update payload for a blog post.
type BlogInput struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Slug           string     `json:"slug" validate:"required,max=200,slug"`
	Content        string     `json:"content" validate:"required"`
	Excerpt        string     `json:"excerpt" validate:"max=500"`
	Author         string     `json:"author" validate:"max=100"`
	AuthorBio      string     `json:"authorBio" validate:"max=1000"`
	AuthorImage    string     `json:"authorImage" validate:"max=2048"`
	Category       string     `json:"category" validate:"max=100"`
	Tags           []string   `json:"tags" validate:"max=20,dive,required,max=50,trimmed"`
	Status         string     `json:"status" validate:"required,oneof=draft published scheduled archived"`
	PublishDate    *time.Time `json:"publishDate" validate:"required_if=Status scheduled"`
	FeaturedImage  string     `json:"featuredImage" validate:"max=2048"`
	ReadingTime    int        `json:"readingTime" validate:"gte=0,lte=1000"`
	SEOTitle       string     `json:"seoTitle" validate:"max=200"`
	SEODescription string     `json:"seoDescription" validate:"max=500"`
	SEOKeywords    []string   `json:"seoKeywords" validate:"max=30,dive,required,max=50,trimmed"`
	OGImage        string     `json:"ogImage" validate:"max=2048"`
	CanonicalURL   string     `json:"canonicalUrl" validate:"omitempty,max=2048,http_url"`
	RelatedPosts   []int64    `json:"relatedPosts" validate:"max=20,dive,gt=0"`
	IsFeatured     bool       `json:"isFeatured"`
	IsBreaking     bool       `json:"isBreaking"`
}

// Normalize trims text, defaults the status to draft, derives a missing
// slug from the title and fills in the reading time from the content.
func (in *BlogInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = normalizeSlug(in.Slug, in.Title)
	in.Status = defaultString(strings.TrimSpace(in.Status), model.BlogStatusDraft)
	in.Category = strings.TrimSpace(in.Category)
	in.Author = strings.TrimSpace(in.Author)
	in.Tags = nonNilList(in.Tags)
	in.SEOKeywords = nonNilList(in.SEOKeywords)
	if in.RelatedPosts == nil {
		in.RelatedPosts = []int64{}
	}
	if in.ReadingTime == 0 && strings.TrimSpace(in.Content) != "" {
		in.ReadingTime = util.ReadingTime(in.Content)
	}
}

// GraphBarInput is one bar of a project chart.
type GraphBarInput struct {
	Label string  `json:"label" validate:"required,max=100"`
	Value float64 `json:"value"`
	Color string  `json:"color" validate:"max=32"`
	Unit  string  `json:"unit" validate:"max=20"`
}

// GraphDataInput is a project results chart.
type GraphDataInput struct {
	Title       string          `json:"title" validate:"max=200"`
	Bars        []GraphBarInput `json:"bars" validate:"max=20,dive"`
	Explanation string          `json:"explanation" validate:"max=1000"`
}

// ProjectInput is the create/update payload for a project.
type ProjectInput struct {
	Title        string         `json:"title" validate:"required,max=200"`
	Slug         string         `json:"slug" validate:"required,max=200,slug"`
	Client       string         `json:"client" validate:"max=200"`
	Category     string         `json:"category" validate:"max=100"`
	Description  string         `json:"description" validate:"required,max=10000"`
	Image        string         `json:"image" validate:"max=2048"`
	Technologies []string       `json:"technologies" validate:"max=30,dive,required,max=50,trimmed"`
	Duration     string         `json:"duration" validate:"max=100"`
	Team         string         `json:"team" validate:"max=200"`
	Status       string         `json:"status" validate:"required,oneof=planning active on-hold completed cancelled"`
	Featured     bool           `json:"featured"`
	Results      []string       `json:"results" validate:"max=20,dive,required,max=500,trimmed"`
	GraphData    GraphDataInput `json:"graphData"`
}

// Normalize trims text, defaults the status to planning and derives a
// missing slug from the title.
func (in *ProjectInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = normalizeSlug(in.Slug, in.Title)
	in.Status = defaultString(strings.TrimSpace(in.Status), model.ProjectStatusPlanning)
	in.Client = strings.TrimSpace(in.Client)
	in.Category = strings.TrimSpace(in.Category)
	in.Technologies = nonNilList(in.Technologies)
	in.Results = nonNilList(in.Results)
	if in.GraphData.Bars == nil {
		in.GraphData.Bars = []GraphBarInput{}
	}
}

// ContactInput is the public contact/apply form.
type ContactInput struct {
	FirstName          string `json:"first_name" validate:"required,max=100"`
	LastName           string `json:"last_name" validate:"max=100"`
	Email              string `json:"email" validate:"required,max=254,email"`
	Phone              string `json:"phone" validate:"max=30"`
	Company            string `json:"company" validate:"max=200"`
	Position           string `json:"position" validate:"max=100"`
	ServiceType        string `json:"service_type" validate:"max=100"`
	ProjectDescription string `json:"project_description" validate:"max=5000"`
	Budget             string `json:"budget" validate:"max=100"`
	Timeline           string `json:"timeline" validate:"max=100"`
	AdditionalInfo     string `json:"additional_info" validate:"max=5000"`
}

// Normalize strips markup from every free-text field.
func (in *ContactInput) Normalize() {
	for _, f := range []*string{
		&in.FirstName, &in.LastName, &in.Phone, &in.Company, &in.Position,
		&in.ServiceType, &in.ProjectDescription, &in.Budget, &in.Timeline,
		&in.AdditionalInfo,
	} {
		*f = util.PlainText(*f)
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=128"`
}

// Normalize trims the username.
func (in *LoginInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
}

// ChangePasswordInput replaces the caller's password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=128"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128,nefield=CurrentPassword"`
}

// ProfileInput updates the caller's profile.
type ProfileInput struct {
	Email string `json:"email" validate:"omitempty,max=254,email"`
	Name  string `json:"name" validate:"max=100"`
}

// Normalize trims and lowercases the email.
func (in *ProfileInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
}

// CreateAdminInput creates another admin account.
type CreateAdminInput struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Email    string `json:"email" validate:"omitempty,max=254,email"`
	Name     string `json:"name" validate:"max=100"`
}

// Normalize trims the text fields.
func (in *CreateAdminInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
}

func normalizeSlug(slug, title string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return util.Slugify(title)
	}
	return strings.ToLower(slug)
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// nonNilList returns items, or an empty list when items is nil. Entries
// are stored exactly as sent; padded ones fail the "trimmed" check.
func nonNilList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
