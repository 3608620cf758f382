package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/catalog/http/server"
	"github.com/rise-and-shine/catalog/observability/metrics"
)

// NewMetricsMW creates a middleware that records request counts and durations
// labelled by method, route pattern and status code.
//
// Requests matching no route are labelled with the "unmatched" route so that
// arbitrary paths cannot blow up label cardinality.
func NewMetricsMW(m *metrics.HTTPMetrics) server.Middleware {
	return server.Middleware{
		Priority: 600,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := c.Next()

			route := c.Route().Path
			if route == "" || route == "/" {
				route = "unmatched"
			}

			status := c.Response().StatusCode()
			if err != nil && status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}

			m.Observe(c.Method(), route, strconv.Itoa(status), time.Since(start))

			return err
		},
	}
}
