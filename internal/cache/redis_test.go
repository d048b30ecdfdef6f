// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("SITEKIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: SITEKIT_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCounter_FixedWindow(t *testing.T) {
	url := skipIfNoRedis(t)

	opts := DefaultRedisCounterOptions()
	opts.URL = url
	opts.Prefix = "sitekit-test:"
	c, err := NewRedisCounter(opts)
	if err != nil {
		t.Fatalf("NewRedisCounter: %v", err)
	}
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	key := "ratelimit:" + uuid.NewString()

	for want := int64(1); want <= 3; want++ {
		n, reset, err := c.Incr(ctx, key, 500*time.Millisecond)
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if n != want {
			t.Errorf("count = %d, want %d", n, want)
		}
		if time.Until(reset) > 500*time.Millisecond {
			t.Errorf("reset %v is beyond the window", reset)
		}
	}

	time.Sleep(600 * time.Millisecond)

	n, _, err := c.Incr(ctx, key, time.Second)
	if err != nil {
		t.Fatalf("Incr: %v", err)
	}
	if n != 1 {
		t.Errorf("count after expiry = %d, want 1", n)
	}
}
