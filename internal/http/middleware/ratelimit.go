package middleware

import (
	"net/http"
	"sync"
	"time"
)

const (
	sweepEvery    = 5 * time.Minute
	bucketIdleTTL = 10 * time.Minute
)

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

// clientLimiter applies a token-bucket limit per client address. Stale
// buckets are swept on the request path, so the limiter owns no goroutine.
type clientLimiter struct {
	mu        sync.Mutex
	rate      float64
	burst     float64
	buckets   map[string]*tokenBucket
	lastSweep time.Time
}

func newClientLimiter(rate float64, burst int) *clientLimiter {
	return &clientLimiter{
		rate:    rate,
		burst:   float64(burst),
		buckets: make(map[string]*tokenBucket),
	}
}

func (l *clientLimiter) allow(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[client]
	if !ok {
		b = &tokenBucket{tokens: l.burst}
		l.buckets[client] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (l *clientLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepEvery {
		return
	}
	l.lastSweep = now
	for client, b := range l.buckets {
		if now.Sub(b.lastSeen) > bucketIdleTTL {
			delete(l.buckets, client)
		}
	}
}

// RateLimit rejects clients exceeding rate requests per second, with the
// given burst, responding 429 Too Many Requests.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := newClientLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientAddr(r), time.Now()) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr prefers the X-Real-Ip header set by chi's RealIP middleware.
func clientAddr(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
