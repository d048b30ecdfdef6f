// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/olegiv/sitekit/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info contains build-time version information.
type Info struct {
	Version   string `json:"version"`             // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string `json:"gitCommit,omitempty"` // Short git commit hash (e.g., "abc1234")
	BuildTime string `json:"buildTime,omitempty"` // Build timestamp in RFC3339 format
}

// Get returns the linked-in version info. Without ldflags the commit and
// build time fall back to the VCS stamp recorded by the Go toolchain.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
	if info.GitCommit != "" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.GitCommit = shortCommit(s.Value)
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}
	return info
}

// String formats the info for the -version flag.
func (i Info) String() string {
	if i.GitCommit == "" {
		return i.Version
	}
	if i.BuildTime == "" {
		return fmt.Sprintf("%s (%s)", i.Version, i.GitCommit)
	}
	return fmt.Sprintf("%s (%s, built %s)", i.Version, i.GitCommit, i.BuildTime)
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
