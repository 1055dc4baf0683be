package middleware

import (
	"net/http"
	"sync"
	"time"

	"hufbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// staleAfter is how long an idle client entry survives before pruning.
	staleAfter = 3 * time.Minute
	// maxEntries bounds the limiter map; the oldest entry is evicted when
	// the cap is hit.
	maxEntries = 10000
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds per-client request limiters. It is an owned, injectable
// component rather than package state, and its memory footprint is bounded:
// stale entries are pruned on each lookup.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	perMin   int
	lastScan time.Time
}

// NewRateLimiter caps each client at perMin requests per minute.
func NewRateLimiter(perMin int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		perMin:  perMin,
	}
}

// allow reports whether the client identified by key may proceed.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.pruneLocked(now)

	entry, ok := rl.clients[key]
	if !ok {
		entry = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.perMin)), rl.perMin),
		}
		if len(rl.clients) >= maxEntries {
			rl.evictOldestLocked()
		}
		rl.clients[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// pruneLocked drops entries idle longer than staleAfter. Scanning the whole
// map on every request would be wasteful, so scans run at most once a second.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	if now.Sub(rl.lastScan) < time.Second {
		return
	}
	rl.lastScan = now
	for key, entry := range rl.clients {
		if now.Sub(entry.lastSeen) > staleAfter {
			delete(rl.clients, key)
		}
	}
}

func (rl *RateLimiter) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range rl.clients {
		if oldestKey == "" || entry.lastSeen.Before(oldest) {
			oldestKey = key
			oldest = entry.lastSeen
		}
	}
	if oldestKey != "" {
		delete(rl.clients, oldestKey)
	}
}

// Middleware limits requests per client IP address.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !rl.allow(ip) {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.Response{
				Success: false,
				Message: "Too many requests",
			})
			return
		}
		c.Next()
	}
}
