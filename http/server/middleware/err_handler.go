package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/catalog/http/server"
)

// NewErrorHandlerMW creates a middleware that converts handler errors into
// standardized JSON responses.
//
// When hideDetails is false, the error trace and details are included in the response.
// The error is still returned so that outer middlewares can log and trace it.
func NewErrorHandlerMW(hideDetails bool) server.Middleware {
	return server.Middleware{
		Priority: 400,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err == nil {
				return nil
			}

			// if error already handled, skip processing.
			if c.Response().StatusCode() >= fiber.StatusBadRequest {
				return err
			}

			return server.WriteErrorResponse(c, err, hideDetails)
		},
	}
}
