package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/catalog/http/server"
	"github.com/rise-and-shine/catalog/observability/logger"
)

// NewRecoveryMW creates a middleware that recovers from panics in the request
// handling chain and converts them to structured errors.
func NewRecoveryMW(log logger.Logger) server.Middleware {
	base := log.Named("http.recovery")

	return server.Middleware{
		Priority: 1000,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = panicError("panic recovered", r)
					base.WithContext(c.UserContext()).Errorx(err)
				}
			}()

			return c.Next()
		},
	}
}
