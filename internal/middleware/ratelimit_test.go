package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/airport-reservation/internal/config"
)

func limitedEcho(t *testing.T, cfg config.RateLimitConfig) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.GET("/v1/flights", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e, mr
}

func TestTokenBucketExhaustsAndRejects(t *testing.T) {
	e, _ := limitedEcho(t, config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		Prefix:         "rl",
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/flights", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/flights", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too_many_requests")
}

// A broken Redis must never take the API down with it.
func TestTokenBucketFailsOpen(t *testing.T) {
	e, mr := limitedEcho(t, config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		Prefix:         "rl",
	})
	mr.Close()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/flights", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

// Buckets are keyed by client address and route only; the limiter runs
// before authentication and must not depend on identity claims.
func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/flights?page=2", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/flights")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	key := buildRateKey(cfg, c)
	assert.Equal(t, "rl:ip:192.0.2.1:route:GET /v1/flights", key)

	// same key with or without an authenticated user in context
	c.Set("user_id", uint64(42))
	assert.Equal(t, key, buildRateKey(cfg, c))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(5), asInt64(int64(5)))
	assert.Equal(t, int64(5), asInt64(5))
	assert.Equal(t, int64(5), asInt64(5.0))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64("nope"))
	assert.Equal(t, int64(0), asInt64(nil))
}
