// Package handler exposes the product use cases over HTTP.
package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rise-and-shine/catalog/catalog/usecase"
	"github.com/rise-and-shine/catalog/http/server/forward"
	"github.com/rise-and-shine/catalog/observability/metrics"
)

// RegisterProducts mounts the product routes under /api/v1/products.
func RegisterProducts(r fiber.Router, uc *usecase.UseCases) {
	products := r.Group("/api/v1/products")

	products.Get("/", forward.ToUserAction(uc.ListProducts))
	products.Get("/:id", forward.ToUserAction(uc.GetProduct))
	products.Post("/", forward.ToUserAction(uc.CreateProduct))
	products.Put("/:id", forward.ToUserAction(uc.UpdateProduct))
	products.Delete("/:id", forward.ToUserAction(uc.DeleteProduct))
}

// Checker reports whether a dependency is usable.
type Checker func(ctx context.Context) error

// RegisterOps mounts GET /health and GET /metrics. Health fails with 503 as soon
// as one of checks fails.
func RegisterOps(r fiber.Router, reg *prometheus.Registry, checks map[string]Checker) {
	r.Get("/metrics", metrics.Handler(reg))

	r.Get("/health", func(c *fiber.Ctx) error {
		for name, check := range checks {
			if err := check(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status":     "unavailable",
					"dependency": name,
					"error":      err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
