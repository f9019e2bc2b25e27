package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/pkg/contextkeys"
)

func fixedClock(t time.Time) (func() time.Time, func(time.Duration)) {
	now := t
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	rl := NewRateLimiter(60, 3)
	clock, advance := fixedClock(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	rl.now = clock

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("ip:10.0.0.1"), "request %d is within the burst", i+1)
	}
	assert.False(t, rl.Allow("ip:10.0.0.1"))

	advance(time.Second)
	assert.True(t, rl.Allow("ip:10.0.0.1"), "one token per second at 60/min")
	assert.False(t, rl.Allow("ip:10.0.0.1"))
}

func TestRateLimiter_SeparateBucketsPerKey(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	assert.True(t, rl.Allow("u:ayse"))
	assert.False(t, rl.Allow("u:ayse"))
	assert.True(t, rl.Allow("u:mehmet"))
	assert.True(t, rl.Allow("ip:10.0.0.1"))
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.maxIdle = 3
	clock, advance := fixedClock(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	rl.now = clock

	for i := 0; i < 3; i++ {
		rl.Allow(fmt.Sprintf("ip:10.0.0.%d", i))
	}
	require.Len(t, rl.visitors, 3)

	advance(rl.idleTTL + time.Second)
	assert.True(t, rl.Allow("ip:10.0.0.9"))
	assert.Len(t, rl.visitors, 1, "idle buckets are dropped once the map is over its limit")

	assert.True(t, rl.Allow("ip:10.0.0.0"), "an evicted key starts with a fresh bucket")
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, 2)

	r := gin.New()
	r.GET("/ip", rl.PerIP(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/ai", func(c *gin.Context) {
		c.Set(contextkeys.UserIDKey, c.Query("uid"))
		c.Next()
	}, rl.PerUser(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(path, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = ip + ":4321"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("/ip", "192.0.2.1").Code)
	assert.Equal(t, http.StatusNoContent, call("/ip", "192.0.2.1").Code)
	rec := call("/ip", "192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
	assert.Equal(t, http.StatusNoContent, call("/ip", "192.0.2.2").Code, "another client has its own bucket")

	// Users are limited by id, wherever they connect from.
	assert.Equal(t, http.StatusNoContent, call("/ai?uid=u1", "192.0.2.10").Code)
	assert.Equal(t, http.StatusNoContent, call("/ai?uid=u1", "192.0.2.11").Code)
	assert.Equal(t, http.StatusTooManyRequests, call("/ai?uid=u1", "192.0.2.12").Code)
	assert.Equal(t, http.StatusNoContent, call("/ai?uid=u2", "192.0.2.12").Code)
}
