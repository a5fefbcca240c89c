package handlerUtil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ProjectDevanagari/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	errBad := response.NewError(http.StatusBadRequest, "Invalid image file")

	code, msg := Resolve(fmt.Errorf("%w: unexpected EOF", errBad))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid image file", msg)

	code, msg = Resolve(errors.New("nil pointer dereference"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, unexpectedErrorMessage, msg)
}

func TestHandleWritesErrorBody(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := New(logger)

	app := fiber.New()
	app.Get("/known", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-1", response.NewError(http.StatusBadRequest, "No image uploaded"), c.Path(), "form_file")
	})
	app.Get("/unknown", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-2", errors.New("secret internals"), c.Path(), "predict")
	})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/known", http.StatusBadRequest, `{"error":"No image uploaded"}`},
		{"/unknown", http.StatusInternalServerError, `{"error":"An unexpected error occurred"}`},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, tt.code, resp.StatusCode)
		assert.JSONEq(t, tt.body, string(body))
	}
}

func TestHandleUnexpectedErrorCarriesTraceID(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := New(logger)

	app := fiber.New()
	app.Get("/with-id", func(c *fiber.Ctx) error {
		return h.Handle(c, "01HZXREQ", errors.New("boom"), c.Path(), "predict")
	})
	app.Get("/without-id", func(c *fiber.Ctx) error {
		return h.Handle(c, "unknown", errors.New("boom"), c.Path(), "predict")
	})
	app.Get("/known", func(c *fiber.Ctx) error {
		return h.Handle(c, "01HZXREQ", response.NewError(http.StatusBadRequest, "Invalid image file"), c.Path(), "read_file")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/with-id", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "01HZXREQ", resp.Header.Get(TraceIDHeader))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/without-id", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(TraceIDHeader), 36)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/known", nil))
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(TraceIDHeader))
}
