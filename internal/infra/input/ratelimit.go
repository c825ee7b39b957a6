package input

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	idle     time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows n requests per window per IP, refilling evenly.
func NewRateLimiter(n int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Every(window / time.Duration(n)),
		burst:    n,
		idle:     2 * window,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.evict(now)

	cl, ok := rl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = cl
	}
	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

// evict drops buckets that have been idle long enough to be full again.
func (rl *RateLimiter) evict(now time.Time) {
	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) > rl.idle {
			delete(rl.limiters, ip)
		}
	}
}

func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
