// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Blog post statuses
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusScheduled = "scheduled"
	BlogStatusArchived  = "archived"
)

// BlogStatuses lists every valid blog post status.
func BlogStatuses() []string {
	return []string{BlogStatusDraft, BlogStatusPublished, BlogStatusScheduled, BlogStatusArchived}
}

// BlogPost represents an article on the public blog.
type BlogPost struct {
	ID             int64        `db:"id" json:"id"`
	Title          string       `db:"title" json:"title"`
	Slug           string       `db:"slug" json:"slug"`
	Content        string       `db:"content" json:"content"`
	Excerpt        string       `db:"excerpt" json:"excerpt"`
	Author         string       `db:"author" json:"author"`
	AuthorBio      string       `db:"author_bio" json:"authorBio"`
	AuthorImage    string       `db:"author_image" json:"authorImage"`
	Category       string       `db:"category" json:"category"`
	Tags           List[string] `db:"tags" json:"tags"`
	Status         string       `db:"status" json:"status"`
	PublishDate    *time.Time   `db:"publish_date" json:"publishDate"`
	FeaturedImage  string       `db:"featured_image" json:"featuredImage"`
	ReadingTime    int          `db:"reading_time" json:"readingTime"`
	SEOTitle       string       `db:"seo_title" json:"seoTitle"`
	SEODescription string       `db:"seo_description" json:"seoDescription"`
	SEOKeywords    List[string] `db:"seo_keywords" json:"seoKeywords"`
	OGImage        string       `db:"og_image" json:"ogImage"`
	CanonicalURL   string       `db:"canonical_url" json:"canonicalUrl"`
	Views          int64        `db:"views" json:"views"`
	Likes          int64        `db:"likes" json:"likes"`
	Comments       int64        `db:"comments" json:"comments"`
	RelatedPosts   List[int64]  `db:"related_posts" json:"relatedPosts"`
	IsFeatured     bool         `db:"is_featured" json:"isFeatured"`
	IsBreaking     bool         `db:"is_breaking" json:"isBreaking"`
	CreatedAt      time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updatedAt"`
}

// IsPublished returns true if the post is published.
func (p *BlogPost) IsPublished() bool {
	return p.Status == BlogStatusPublished
}
