// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200

var (
	// richTextPolicy keeps the formatting tags an editor produces while
	// stripping scripts, event handlers and other active content.
	richTextPolicy = bluemonday.UGCPolicy()
	// plainTextPolicy removes every tag.
	plainTextPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML cleans authored HTML for storage.
func SanitizeHTML(s string) string {
	return richTextPolicy.Sanitize(s)
}

// PlainText strips all markup from untrusted input and trims whitespace.
// Entities are decoded so "Tom & Jerry" is stored as typed; decoding is
// repeated until stable so escaped tags cannot survive as real ones.
func PlainText(s string) string {
	for range 3 {
		clean := html.UnescapeString(plainTextPolicy.Sanitize(s))
		if clean == s {
			break
		}
		s = clean
	}
	return strings.TrimSpace(s)
}

// ReadingTime estimates minutes needed to read an HTML document.
// Empty content still reports one minute.
func ReadingTime(content string) int {
	words := len(strings.Fields(plainTextPolicy.Sanitize(content)))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
