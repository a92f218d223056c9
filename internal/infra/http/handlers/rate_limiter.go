package handlers

import (
	"sync"
	"time"
)

// RateLimiter is a fixed-window counter per client key.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*submissionWindow
	limit   int
	window  time.Duration

	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type submissionWindow struct {
	count   int
	startAt time.Time
}

// NewRateLimiter starts a sweeper that drops idle clients; call Stop to end it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(limit, window, time.Now)
	go rl.sweep(10 * time.Minute)
	return rl
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*submissionWindow),
		limit:   limit,
		window:  window,
		now:     now,
		stop:    make(chan struct{}),
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.startAt) >= rl.window {
		rl.windows[key] = &submissionWindow{count: 1, startAt: now}
		return true
	}

	w.count++
	return w.count <= rl.limit
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if now.Sub(w.startAt) > 2*rl.window {
			delete(rl.windows, key)
		}
	}
}
