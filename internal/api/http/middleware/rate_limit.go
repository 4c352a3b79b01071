package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(c *gin.Context) string

// bucketIdleTTL drops buckets of callers that have gone quiet. An idle
// bucket has refilled long before this, so dropping it changes nothing.
const bucketIdleTTL = 10 * time.Minute

// RateLimiter hands out one token bucket per key.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *cache.Cache
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows perMinute requests per key with the given burst.
// perMinute <= 0 disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return newRateLimiter(perMinute, burst, bucketIdleTTL)
}

func newRateLimiter(perMinute, burst int, idleTTL time.Duration) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &RateLimiter{
		buckets: cache.New(idleTTL, idleTTL),
		limit:   limit,
		burst:   burst,
	}
}

// limiter returns the key's bucket and restarts its idle timer.
func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	var lim *rate.Limiter
	if v, ok := l.buckets.Get(key); ok {
		lim = v.(*rate.Limiter)
	} else {
		lim = rate.NewLimiter(l.limit, l.burst)
	}
	l.buckets.Set(key, lim, cache.DefaultExpiration)
	return lim
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit == rate.Inf {
			c.Next()
			return
		}
		k := key(c)
		if k == "" {
			k = c.ClientIP()
		}
		if !l.limiter(k).Allow() {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
