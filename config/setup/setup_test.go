package setup

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-store/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, LogLevel("warn"))
	assert.Equal(t, slog.LevelError, LogLevel("error"))
	assert.Equal(t, slog.LevelInfo, LogLevel("verbose"))
}

func TestServerWiring(t *testing.T) {
	cfg := &config.Config{
		Env:         "test",
		DataDir:     t.TempDir(),
		StoreName:   "wiring",
		CORSOrigins: "*",
		RateLimit:   100,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := InitStore(cfg, logger)
	require.NoError(t, err)
	defer Shutdown(store, logger)

	application := InitApp(store, logger)
	app := NewFiberApp(cfg, logger)
	ApplyMiddleware(app, cfg, logger)
	RegisterRoutes(app, application)

	req := httptest.NewRequest(http.MethodPost, "/api/movies",
		strings.NewReader(`{"movies":[{"title":"Casablanca","year":1943}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/movies/count", nil), -1)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["count"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRateLimitSkipsHealth(t *testing.T) {
	cfg := &config.Config{
		Env:         "test",
		DataDir:     t.TempDir(),
		StoreName:   "limits",
		CORSOrigins: "*",
		RateLimit:   1,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := InitStore(cfg, logger)
	require.NoError(t, err)
	defer Shutdown(store, logger)

	app := NewFiberApp(cfg, logger)
	ApplyMiddleware(app, cfg, logger)
	RegisterRoutes(app, InitApp(store, logger))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/movies/count", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/movies/count", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	for i := 0; i < 3; i++ {
		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	cfg := &config.Config{
		Env:         "test",
		DataDir:     t.TempDir(),
		StoreName:   "closed",
		CORSOrigins: "*",
		RateLimit:   100,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := InitStore(cfg, logger)
	require.NoError(t, err)

	app := NewFiberApp(cfg, logger)
	ApplyMiddleware(app, cfg, logger)
	RegisterRoutes(app, InitApp(store, logger))
	Shutdown(store, logger)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/movies/count", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Movie store unavailable", body["error"])
	assert.NotEmpty(t, body["request_id"])
}

func TestInitStoreRejectsBadName(t *testing.T) {
	cfg := &config.Config{DataDir: t.TempDir(), StoreName: "bad/name"}
	_, err := InitStore(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
