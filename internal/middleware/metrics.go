package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// NewMetricsMiddleware labels requests with the matched route pattern, so
// unmatched paths collapse into the mount point of the last middleware.
func (m *middleware) NewMetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		m.metrics.ObserveRequest(c.Route().Path, c.Method(), responseStatus(c, err), time.Since(start))

		return err
	}
}
