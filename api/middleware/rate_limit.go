package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

// IPRateLimiter throttles requests per client IP. It guards the
// code-request endpoints against flooding arbitrary addresses with
// verification codes; there is no per-key cooldown below it.
type IPRateLimiter struct {
	mutex   sync.Mutex
	clients map[string]*ipClient
	rate    rate.Limit
	burst   int
}

type ipClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewCodeRequestLimiter throttles endpoints that send verification
// codes: one request per second with a burst of five.
func NewCodeRequestLimiter() *IPRateLimiter {
	return newIPRateLimiter(rate.Limit(1), 5)
}

// NewLoginLimiter throttles credential checks: two per second with a
// burst of four.
func NewLoginLimiter() *IPRateLimiter {
	return newIPRateLimiter(rate.Limit(2), 4)
}

func newIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*ipClient),
		rate:    r,
		burst:   burst,
	}
}

func (l *IPRateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !l.allow(c.RealIP()) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		}
		return next(c)
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := time.Now()
	client, ok := l.clients[ip]
	if !ok {
		l.evictIdle(now)
		client = &ipClient{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.Allow()
}

func (l *IPRateLimiter) evictIdle(now time.Time) {
	cutoff := now.Add(-clientIdleTTL)
	for ip, client := range l.clients {
		if client.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}
