// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryCounter_FixedWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCounter(MemoryCounterOptions{Now: clock.Now})
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	window := time.Minute

	for want := int64(1); want <= 3; want++ {
		n, reset, err := c.Incr(ctx, "ip:1", window)
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if n != want {
			t.Errorf("count = %d, want %d", n, want)
		}
		if !reset.Equal(clock.now.Add(window)) && want == 1 {
			t.Errorf("reset = %v, want %v", reset, clock.now.Add(window))
		}
	}

	// Other keys are independent.
	n, _, _ := c.Incr(ctx, "ip:2", window)
	if n != 1 {
		t.Errorf("other key count = %d, want 1", n)
	}

	// Still in the window.
	clock.Advance(59 * time.Second)
	n, _, _ = c.Incr(ctx, "ip:1", window)
	if n != 4 {
		t.Errorf("count before reset = %d, want 4", n)
	}

	// Window expired: counting restarts.
	clock.Advance(time.Second)
	n, reset, _ := c.Incr(ctx, "ip:1", window)
	if n != 1 {
		t.Errorf("count after reset = %d, want 1", n)
	}
	if !reset.Equal(clock.Now().Add(window)) {
		t.Errorf("new reset = %v, want %v", reset, clock.Now().Add(window))
	}
}

func TestMemoryCounter_RemoveExpired(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := NewMemoryCounter(MemoryCounterOptions{Now: clock.Now})
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	_, _, _ = c.Incr(ctx, "short", time.Second)
	_, _, _ = c.Incr(ctx, "long", time.Hour)

	clock.Advance(2 * time.Second)
	c.removeExpired()

	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestMemoryCounter_Concurrent(t *testing.T) {
	c := NewMemoryCounter(MemoryCounterOptions{CleanupInterval: time.Millisecond})
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				_, _, _ = c.Incr(ctx, "shared", time.Hour)
			}
		}()
	}
	wg.Wait()

	n, _, err := c.Incr(ctx, "shared", time.Hour)
	if err != nil {
		t.Fatalf("Incr: %v", err)
	}
	if n != 1001 {
		t.Errorf("count = %d, want 1001", n)
	}
}

func TestMemoryCounter_Closed(t *testing.T) {
	c := NewMemoryCounter(MemoryCounterOptions{CleanupInterval: time.Second})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Closing twice is safe.
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, _, err := c.Incr(context.Background(), "k", time.Minute); err != ErrCounterClosed {
		t.Errorf("Incr after Close err = %v, want ErrCounterClosed", err)
	}
}
