package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bcmenu/benglish-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// clientEntry pairs a limiter with its last use so stale clients can be
// evicted.
type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token-bucket limit per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry
	rps     rate.Limit
	burst   int
}

// staleAfter is how long an idle client's bucket is kept.
const staleAfter = 10 * time.Minute

// NewRateLimiter creates a per-IP rate limiter allowing rps sustained
// requests with the given burst. A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Limit is the middleware. Requests over the budget get 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if rl.rps <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
				"Too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, ok := rl.clients[ip]
	if !ok {
		// Piggyback eviction of stale buckets on new-client arrivals to
		// keep the map bounded without a background goroutine.
		for addr, e := range rl.clients {
			if now.Sub(e.lastSeen) > staleAfter {
				delete(rl.clients, addr)
			}
		}
		entry = &clientEntry{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// clientIP extracts the client address, trusting RealIP middleware to have
// already rewritten RemoteAddr when behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
