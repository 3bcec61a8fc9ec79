package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Multi", "a")
	hdr.Add("X-Multi", "b")
	body := []byte(`{"movies":[]}`)

	raw, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(raw)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, []string{"a", "b"}, gotHdr["X-Multi"])
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)

	// Header length pointing past the end of the buffer.
	raw, err := encodePayload(http.StatusOK, http.Header{}, nil)
	require.NoError(t, err)
	raw[7] = 0xFF
	_, _, _, ok = decodePayload(raw)
	assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/movies/:id")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	// Same route and query always hash to the same key.
	assert.Equal(t, cacheKeyFrom(cfg, newCtx("/v1/movies/1?a=1")), cacheKeyFrom(cfg, newCtx("/v1/movies/9?a=1")))
	// Different query strings must not collide.
	assert.NotEqual(t, cacheKeyFrom(cfg, newCtx("/v1/movies/1?a=1")), cacheKeyFrom(cfg, newCtx("/v1/movies/1?a=2")))

	// The route-only strategy ignores the query string.
	cfg.KeyStrategy = "route"
	assert.Equal(t, cacheKeyFrom(cfg, newCtx("/v1/movies/1?a=1")), cacheKeyFrom(cfg, newCtx("/v1/movies/1?a=2")))
}

func TestCachePassThroughWithoutRedis(t *testing.T) {
	e := echo.New()
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
