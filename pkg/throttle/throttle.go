// Package throttle provides a leading-edge rate limiter.
//
// A [Limiter] lets the first call through, then drops every call until its
// cooldown window has elapsed. Dropped calls are not queued or deferred.
//
//	scroll := throttle.New(500 * time.Millisecond)
//	if scroll.Allow() {
//	    addCard()
//	}
//
// It is a single-token bucket from golang.org/x/time/rate refilled once per
// window, driven by an injectable clock.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Clock returns the current time.
type Clock func() time.Time

// Limiter is a leading-edge rate limiter. It is safe for concurrent use.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	now    Clock
	bucket *rate.Limiter

	allowed int
	dropped int
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the wall clock, typically with a simulated one.
func WithClock(c Clock) Option { return func(l *Limiter) { l.now = c } }

// New creates a limiter with the given cooldown window. A non-positive
// window allows every call.
func New(window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{window: window, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	l.bucket = newBucket(window)
	return l
}

func newBucket(window time.Duration) *rate.Limiter {
	if window <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(window), 1)
}

// Allow reports whether a call arriving now may run, and starts a new
// cooldown window if so.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.bucket.AllowN(l.now(), 1) {
		l.dropped++
		return false
	}
	l.allowed++
	return true
}

// Do runs fn if the call is allowed and reports whether it ran.
func (l *Limiter) Do(fn func()) bool {
	if !l.Allow() {
		return false
	}
	fn()
	return true
}

// Window returns the cooldown window.
func (l *Limiter) Window() time.Duration { return l.window }

// Stats returns how many calls were allowed and dropped so far.
func (l *Limiter) Stats() (allowed, dropped int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowed, l.dropped
}

// Reset forgets the current window so the next call is allowed.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bucket = newBucket(l.window)
}
