// Package ratelimiter keeps one token bucket per identity (user or IP) and
// forgets identities that have been idle longer than the expiry.
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter *rate.Limiter
	expires time.Time
}

type UserRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	expire   time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New allows perMinute requests per identity with bursts of up to burst.
// Idle identities are swept every expire.
func New(perMinute, burst int, expire time.Duration) *UserRateLimiter {
	if expire <= 0 {
		expire = 10 * time.Minute
	}
	rl := &UserRateLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:    max(burst, 1),
		expire:   expire,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

func (rl *UserRateLimiter) Allow(identity string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	e, ok := rl.limiters[identity]
	if !ok || now.After(e.expires) {
		e = &entry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[identity] = e
	}
	e.expires = now.Add(rl.expire)
	return e.limiter.AllowN(now, 1)
}

// Len reports how many identities are currently tracked.
func (rl *UserRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *UserRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *UserRateLimiter) sweep() {
	ticker := time.NewTicker(rl.expire)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stop:
			return
		}
	}
}

func (rl *UserRateLimiter) cleanupExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for identity, e := range rl.limiters {
		if now.After(e.expires) {
			delete(rl.limiters, identity)
		}
	}
}
