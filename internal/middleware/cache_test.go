package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/airport-reservation/internal/config"
)

func cacheTestServer(t *testing.T, cfg config.CacheConfig, body string) *echo.Echo {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	e := echo.New()
	e.GET("/v1/flights", func(c echo.Context) error {
		return c.String(http.StatusOK, body)
	}, NewRedisCache(cfg, rdb))
	return e
}

func getFlights(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/flights", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCacheHitServesFullBody(t *testing.T) {
	body := strings.Repeat("a", 512)
	e := cacheTestServer(t, config.CacheConfig{
		Enabled: true, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: 1 << 20,
	}, body)

	first := getFlights(e)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, body, first.Body.String())

	second := getFlights(e)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, body, second.Body.String())
}

// A response larger than the capture limit is served in full but never
// stored, so later requests miss again instead of replaying a cut-off
// body.
func TestCacheSkipsTruncatedCapture(t *testing.T) {
	body := `{"flights":[1,2,3,4,5,6,7,8,9,10]}`
	e := cacheTestServer(t, config.CacheConfig{
		Enabled: true, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: 10,
	}, body)

	first := getFlights(e)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, body, first.Body.String())

	second := getFlights(e)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "MISS", second.Header().Get("X-Cache"))
	assert.Equal(t, body, second.Body.String())
}

func TestCachePassThroughWhenDisabled(t *testing.T) {
	e := echo.New()
	e.GET("/v1/flights", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, NewRedisCache(config.CacheConfig{Enabled: false}, nil))

	rec := getFlights(e)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(body))

	_, _, _, ok = decodePayload([]byte("short"))
	assert.False(t, ok)
}
