package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per identity (user, ip, ...).
// Buckets idle for longer than expiration are dropped by Cleanup.
type UserRateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*entry
	rate       rate.Limit
	burst      int
	expiration time.Duration
	now        func() time.Time
}

func New(rps float64, burst int, expiration time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:   make(map[string]*entry),
		rate:       rate.Limit(rps),
		burst:      burst,
		expiration: expiration,
		now:        time.Now,
	}
}

func OnceInSecond() *UserRateLimiter {
	return New(1, 1, time.Hour)
}

func Rps10() *UserRateLimiter {
	return New(10, 10, time.Hour)
}

func (u *UserRateLimiter) Allow(identity string) bool {
	u.mu.Lock()
	e, ok := u.limiters[identity]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(u.rate, u.burst)}
		u.limiters[identity] = e
	}
	now := u.now()
	e.lastSeen = now
	u.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// Cleanup removes buckets not used within the expiration window and returns how many were removed.
func (u *UserRateLimiter) Cleanup() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	removed := 0
	cutoff := u.now().Add(-u.expiration)
	for id, e := range u.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(u.limiters, id)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until stop is closed.
func (u *UserRateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				u.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}

func (u *UserRateLimiter) size() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.limiters)
}
