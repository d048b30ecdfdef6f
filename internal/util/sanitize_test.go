// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello there", "Hello there"},
		{"ampersand kept", "Tom & Jerry", "Tom & Jerry"},
		{"tags stripped", "<b>bold</b> text", "bold text"},
		{"script removed", `<script>alert("x")</script>Hi`, "Hi"},
		{"escaped tags cannot survive", "&lt;b&gt;hi&lt;/b&gt;", "hi"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	in := `<p onclick="evil()">Hello <a href="javascript:alert(1)">x</a><script>bad()</script><strong>ok</strong></p>`
	got := SanitizeHTML(in)

	for _, banned := range []string{"onclick", "javascript:", "<script", "bad()"} {
		if strings.Contains(got, banned) {
			t.Errorf("SanitizeHTML kept %q: %s", banned, got)
		}
	}
	if !strings.Contains(got, "<strong>ok</strong>") {
		t.Errorf("SanitizeHTML dropped safe markup: %s", got)
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty", 0, 1},
		{"short", 50, 1},
		{"exactly one minute", 200, 1},
		{"just over", 201, 2},
		{"long", 1000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "<p>" + strings.Repeat("word ", tt.words) + "</p>"
			if got := ReadingTime(content); got != tt.want {
				t.Errorf("ReadingTime(%d words) = %d, want %d", tt.words, got, tt.want)
			}
		})
	}
}
