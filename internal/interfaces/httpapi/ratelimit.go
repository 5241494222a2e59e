package httpapi

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupThreshold = 500
	limiterMaxIdle          = 10 * time.Minute
)

var errRateLimited = errors.New("too many write requests")

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// WriteLimiter hands out one token bucket per client IP. Idle buckets are
// pruned once the table grows past limiterCleanupThreshold.
type WriteLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewWriteLimiter returns nil when perSecond is not positive, which disables
// limiting.
func NewWriteLimiter(perSecond float64, burst int) *WriteLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &WriteLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *WriteLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	return l.limiter(ip).AllowN(l.now(), 1)
}

func (l *WriteLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.entries) > limiterCleanupThreshold {
		cutoff := now.Add(-limiterMaxIdle)
		for key, e := range l.entries {
			if e.lastSeen.Before(cutoff) {
				delete(l.entries, key)
			}
		}
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimitWrites rejects requests once the caller's IP runs out of tokens.
func RateLimitWrites(limiter *WriteLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RateLimitWrites")
		defer span.End()

		if !limiter.Allow(resolveClientIP(r)) {
			w.Header().Set("Retry-After", "1")
			writeError(ctx, w, errRateLimited)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
