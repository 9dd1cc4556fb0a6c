package server

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/readme-writer/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter holds one token bucket per client key. A client may make
// Requests calls in a burst, refilled evenly across Window.
type RateLimiter struct {
	name    string
	message string
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	nowFunc func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func NewRateLimiter(name string, rl config.RateLimit, message string) *RateLimiter {
	requests := max(rl.Requests, 1)
	window := rl.Window
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		name:    name,
		message: message,
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		idleTTL: window,
		nowFunc: time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Allow reports whether key may proceed now
func (l *RateLimiter) Allow(key string) bool {
	now := l.nowFunc()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)
	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastAccess = now
	return cl.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep drops clients idle for longer than a full window, their bucket is full again by then
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for key, cl := range l.clients {
		if now.Sub(cl.lastAccess) > l.idleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) retryAfter() int {
	return max(int(math.Ceil(1.0/float64(l.limit))), 1)
}

// limit returns middleware enforcing l, or a pass through when l is nil
func (s *Server) limit(l *RateLimiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if l == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			key := s.rateLimitKey(r)
			if !l.Allow(key) {
				zerolog.Ctx(r.Context()).Warn().Str("limit", l.name).Str("key", key).Msg("Rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
				writeError(w, http.StatusTooManyRequests, l.message)
				return
			}
			next(w, r)
		}
	}
}

// rateLimitKey is the session login when authenticated, the client IP otherwise
func (s *Server) rateLimitKey(r *http.Request) string {
	if sess, ok := sessionFromContext(r.Context()); ok {
		return "user:" + sess.User.Login
	}
	return "ip:" + clientIP(r, s.trustProxy)
}

// clientIP reads X-Forwarded-For only when trustProxy is set, any client can
// write that header otherwise
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
