// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the counter stores behind request rate limiting:
// an in-process map for single instances and Redis for shared limits.
package cache

import (
	"context"
	"time"
)

// Counter counts events per key in fixed windows.
// All implementations must be thread-safe.
type Counter interface {
	// Incr adds one to key's counter in the current window and returns the
	// new count and the time the window ends. The window starts with the
	// first increment after the previous one expired.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)

	// Close releases any resources held by the counter.
	Close() error
}

// Error represents an error type for counter operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrCounterClosed indicates the counter has been closed.
const ErrCounterClosed Error = "counter closed"
