// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{name: "version only", info: Info{Version: "dev"}, want: "dev"},
		{name: "with commit", info: Info{Version: "v1.0.0", GitCommit: "abc1234"}, want: "v1.0.0 (abc1234)"},
		{
			name: "full",
			info: Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"},
			want: "v1.0.0 (abc1234, built 2025-01-30T12:00:00Z)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetUsesLinkedValues(t *testing.T) {
	oldV, oldC, oldB := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldV, oldC, oldB })

	Version, GitCommit, BuildTime = "v2.0.0", "def5678", "2026-01-01T00:00:00Z"

	got := Get()
	want := Info{Version: "v2.0.0", GitCommit: "def5678", BuildTime: "2026-01-01T00:00:00Z"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortCommit = %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Errorf("shortCommit = %q", got)
	}
}
