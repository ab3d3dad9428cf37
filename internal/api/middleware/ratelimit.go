package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is a per-client token bucket limiter kept in memory
// Each client may burst up to requests and refills at requests per window
type RateLimiter struct {
	clients  map[string]*clientLimit
	limit    rate.Limit
	requests int
	window   time.Duration
	done     chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
}

type clientLimit struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter
// requests: maximum number of requests allowed per window
// window: time window duration (e.g., 1 minute)
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimit),
		limit:    rate.Every(window / time.Duration(requests)),
		requests: requests,
		window:   window,
		done:     make(chan struct{}),
	}

	// Evict idle clients every window duration
	go rl.cleanup()

	return rl
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := getClientIP(r)

		if !rl.allow(clientID) {
			slog.Warn("rate limit exceeded", "client", clientID, "path", r.URL.Path)
			retryAfter := int(math.Ceil(rl.window.Seconds() / float64(rl.requests)))
			w.Header().Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			writeJSONError(w, http.StatusTooManyRequests, "RateLimitExceeded", "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Stop ends the background eviction loop
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// allow checks if a client is allowed to make a request
func (rl *RateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, exists := rl.clients[clientID]
	if !exists {
		client = &clientLimit{limiter: rate.NewLimiter(rl.limit, rl.requests)}
		rl.clients[clientID] = client
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

// cleanup removes clients idle for longer than a window
// An idle client's bucket is full again, so dropping it changes nothing
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for clientID, client := range rl.clients {
		if now.Sub(client.lastSeen) > rl.window {
			delete(rl.clients, clientID)
		}
	}
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// First hop of X-Forwarded-For (if behind proxy)
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
