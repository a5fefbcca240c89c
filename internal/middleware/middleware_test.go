package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ProjectDevanagari/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg Config, m *metrics.Metrics) *fiber.App {
	t.Helper()
	logger, _ := test.NewNullLogger()

	mw := New(logger, cfg, m)
	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	app.Use(mw.NewLoggingMiddleware())
	app.Use(mw.NewMetricsMiddleware())
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(mw.GetRequestID(c))
	})
	app.Get("/limited", mw.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).SendString("boom")
	})
	return app
}

func TestRequestIDGenerated(t *testing.T) {
	app := newTestApp(t, Config{}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/id", nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, string(body), 26)
	assert.Equal(t, string(body), resp.Header.Get(RequestIDKey))
}

func TestRequestIDPropagated(t *testing.T) {
	app := newTestApp(t, Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDKey, "client-supplied")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", string(body))
	assert.Equal(t, "client-supplied", resp.Header.Get(RequestIDKey))
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	mw := New(logrus.New(), Config{}, nil)
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(mw.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "unknown", string(body))
}

func TestRateLimiter(t *testing.T) {
	app := newTestApp(t, Config{RateLimit: 0.001, RateBurst: 2}, nil)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Too many requests"}`, string(body))
}

func TestRateLimiterDisabled(t *testing.T) {
	app := newTestApp(t, Config{}, nil)

	for i := 0; i < 20; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
}

func TestRateLimiterPerIP(t *testing.T) {
	limiter := newRateLimiter(0.001, 1)

	assert.True(t, limiter.GetLimiterFrom("10.0.0.1").Allow())
	assert.False(t, limiter.GetLimiterFrom("10.0.0.1").Allow())
	assert.True(t, limiter.GetLimiterFrom("10.0.0.2").Allow())
}

func TestLoggingLevels(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})
	app := newTestApp(t, Config{}, nil)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/id", nil), -1)
	require.NoError(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "/id", hook.LastEntry().Data["path"])
	assert.Equal(t, 200, hook.LastEntry().Data["status"])

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	app := newTestApp(t, Config{}, m)

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/id", nil), -1)
		require.NoError(t, err)
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",path="/id",status="200"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "http_requests_total"))
}

func TestMetricsMiddlewareBoundsPathLabels(t *testing.T) {
	m := metrics.New()
	app := newTestApp(t, Config{}, m)

	for _, path := range []string{"/random-a", "/random-b", "/random-c/deeper"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	series := 0
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			series++
			for _, label := range metric.GetLabel() {
				if label.GetName() == "path" {
					assert.NotContains(t, label.GetValue(), "random")
				}
			}
		}
	}
	assert.Equal(t, 1, series)
}
