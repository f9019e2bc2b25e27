package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"kariyer_backend/internal/logger"
	"kariyer_backend/pkg/apperrors"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key (user id or client ip).
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	maxIdle  int
	now      func() time.Time
}

// NewRateLimiter allows perMinute requests per key with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		maxIdle:  1024,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	if len(rl.visitors) > rl.maxIdle {
		rl.evictIdle(now)
	}
	return v.limiter.AllowN(now, 1)
}

// evictIdle drops buckets unused for idleTTL. Caller holds mu.
func (rl *RateLimiter) evictIdle(now time.Time) {
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, key)
		}
	}
}

// PerUser limits by authenticated user, falling back to client ip.
func (rl *RateLimiter) PerUser() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string {
		if id := GetUserID(c); id != "" {
			return "u:" + id
		}
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) PerIP() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if !rl.Allow(key) {
			logger.CtxWarn(c.Request.Context(), "rate limit exceeded", "key", key, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.NewRateLimitError("Too many requests, please slow down"))
			return
		}
		c.Next()
	}
}
