package kit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// IPRateLimiter caps requests per client IP in fixed windows. Fixed
// windows admit up to 2x the limit across a boundary, which is fine for
// abuse protection on a session-create endpoint.
type IPRateLimiter struct {
	mu      sync.Mutex
	limit   int
	size    time.Duration
	windows map[string]*window
	now     func() time.Time
}

func NewIPRateLimiter(limit int, windowSeconds int) *IPRateLimiter {
	return &IPRateLimiter{
		limit:   limit,
		size:    time.Duration(windowSeconds) * time.Second,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	wnd, ok := l.windows[ip]
	if !ok || now.Sub(wnd.start) >= l.size {
		l.gcLocked(now)
		l.windows[ip] = &window{start: now, count: 1}
		return true
	}

	if wnd.count >= l.limit {
		return false
	}
	wnd.count++
	return true
}

// gcLocked drops windows that ended long ago so the map tracks only
// recently seen clients.
func (l *IPRateLimiter) gcLocked(now time.Time) {
	cutoff := now.Add(-2 * l.size)
	for ip, wnd := range l.windows {
		if wnd.start.Before(cutoff) {
			delete(l.windows, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok || first != "" {
			return strings.TrimSpace(first)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
