// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCounter is a thread-safe in-memory Counter.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
	stopCh  chan struct{}
	closed  atomic.Bool
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryCounterOptions configures the memory counter.
type MemoryCounterOptions struct {
	// CleanupInterval is how often expired windows are dropped (0 = never).
	CleanupInterval time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewMemoryCounter creates a memory counter.
func NewMemoryCounter(opts MemoryCounterOptions) *MemoryCounter {
	c := &MemoryCounter{
		windows: make(map[string]*memoryWindow),
		now:     opts.Now,
		stopCh:  make(chan struct{}),
	}
	if c.now == nil {
		c.now = time.Now
	}

	if opts.CleanupInterval > 0 {
		go c.cleanupLoop(opts.CleanupInterval)
	}
	return c
}

// Incr implements Counter.
func (c *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	if c.closed.Load() {
		return 0, time.Time{}, ErrCounterClosed
	}

	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		c.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// Len returns the number of tracked keys, expired or not.
func (c *MemoryCounter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.windows)
}

// Close stops the cleanup goroutine.
func (c *MemoryCounter) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}

func (c *MemoryCounter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *MemoryCounter) removeExpired() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, w := range c.windows {
		if !now.Before(w.resetAt) {
			delete(c.windows, key)
		}
	}
}
