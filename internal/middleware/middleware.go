package middleware

import (
	"errors"

	"ProjectDevanagari/pkg/metrics"
	"ProjectDevanagari/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	NewMetricsMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type Config struct {
	// RateLimit is the per-IP request rate in requests per second; 0 disables it.
	RateLimit float64
	RateBurst int
}

type middleware struct {
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	metrics             *metrics.Metrics
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, cfg Config, m *metrics.Metrics) Middleware {
	var limiter *rateLimiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = newRateLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &middleware{
		rateLimitter:        limiter,
		requestIDMiddleware: NewRequestIDMiddleware(utils.New(0)),
		metrics:             m,
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

// responseStatus is the status the client will see. Errors returned down the
// chain have not been written by the app's error handler yet.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
