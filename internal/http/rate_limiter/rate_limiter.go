package rate_limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	cleanupEvery = time.Minute
	visitorTTL   = 5 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Visitors hands out one token bucket per client key.
type Visitors struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	rps      rate.Limit
	burst    int
}

func NewVisitors(rps float64, burst int) *Visitors {
	return &Visitors{
		visitors: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (v *Visitors) GetVisitor(ip string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, exists := v.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(v.rps, v.burst)
		v.visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	c.lastSeen = time.Now()
	return c.limiter
}

func (v *Visitors) Allow(ip string) bool {
	return v.GetVisitor(ip).Allow()
}

// StartVisitorCleanupLoop drops idle visitors every minute until ctx is done.
func (v *Visitors) StartVisitorCleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.removeIdle(visitorTTL)
		}
	}
}

func (v *Visitors) removeIdle(ttl time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for ip, c := range v.visitors {
		if time.Since(c.lastSeen) > ttl {
			delete(v.visitors, ip)
		}
	}
}

func (v *Visitors) size() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.visitors)
}

func (v *Visitors) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visitors = make(map[string]*clientLimiter)
}
