// Package ratelimit bounds login attempts per identifier within a fixed
// window. Both backends implement domain.LoginRateLimiter; the denial is
// immediate, retry timing is the caller's concern.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/deadloked8999/e-bar/domain"
)

type entry struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter is an in-process fixed-window counter keyed by login
// identifier. Increment-and-check is serialized by a single mutex; the
// per-key state is tiny and contention is limited to the login endpoint.
type MemoryLimiter struct {
	mu          sync.Mutex
	entries     map[string]*entry
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewMemoryLimiter creates an in-memory login rate limiter
func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries:     make(map[string]*entry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Allow implements domain.LoginRateLimiter
func (l *MemoryLimiter) Allow(_ context.Context, identifier string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok {
		return true, nil
	}
	if l.now().Sub(e.windowStart) >= l.window {
		delete(l.entries, identifier)
		return true, nil
	}
	return e.count < l.maxAttempts, nil
}

// RecordAttempt implements domain.LoginRateLimiter. Attempts count
// regardless of login outcome.
func (l *MemoryLimiter) RecordAttempt(_ context.Context, identifier string) error {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.entries[identifier] = &entry{count: 1, windowStart: now}
		return nil
	}
	e.count++
	return nil
}

// StartJanitor prunes idle entries so the map does not grow without
// bound. It stops when ctx is cancelled.
func (l *MemoryLimiter) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.prune()
			}
		}
	}()
}

func (l *MemoryLimiter) prune() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, e := range l.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(l.entries, id)
		}
	}
}

var _ domain.LoginRateLimiter = (*MemoryLimiter)(nil)
