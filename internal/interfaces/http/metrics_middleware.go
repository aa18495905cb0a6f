package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPMetrics lo implementa *metrics.Metrics.
type HTTPMetrics interface {
	RecordHTTPRequest(method, path string, status int, elapsed time.Duration)
}

// RequestMetrics cuenta peticiones y latencia por ruta registrada (no por path crudo).
func RequestMetrics(m HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.RecordHTTPRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
