// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// CounterConfig holds configuration for counter creation.
type CounterConfig struct {
	// RedisURL selects the Redis backend when set.
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	// CleanupInterval is the expired-window sweep interval for the memory backend.
	CleanupInterval time.Duration
}

// NewCounter creates a Redis counter when RedisURL is set and reachable,
// and a memory counter otherwise. The returned name is "redis" or "memory".
func NewCounter(cfg CounterConfig) (Counter, string) {
	if cfg.RedisURL != "" {
		opts := DefaultRedisCounterOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		rc, err := NewRedisCounter(opts)
		if err == nil {
			return rc, "redis"
		}
		slog.Warn("redis unavailable, falling back to memory rate limit counters", "error", err)
	}

	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return NewMemoryCounter(MemoryCounterOptions{CleanupInterval: interval}), "memory"
}
