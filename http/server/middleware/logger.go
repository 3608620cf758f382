package middleware

import (
	"runtime"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/catalog/http/server"
	"github.com/rise-and-shine/catalog/observability/logger"
)

// NewLoggerMW creates a middleware that logs HTTP requests and responses.
//
// The logging level is determined by the HTTP status code
// (info for 2xx/3xx, warn for 4xx, error for 5xx).
func NewLoggerMW(log logger.Logger) server.Middleware {
	base := log.Named("http.logger")

	return server.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := handleWithRecovery(c)

			statusCode := c.Response().StatusCode()

			l := base.
				WithContext(c.UserContext()).
				With("http_status_code", statusCode).
				With("http_method", c.Method()).
				With("http_path", c.Path()).
				With("http_route", c.Route().Path).
				With("duration", time.Since(start).String()).
				With("query_params", c.Queries()).
				With("request_size", c.Request().Header.ContentLength())

			if err != nil {
				e := errx.AsErrorX(err)
				l = l.With("error", map[string]any{
					"code":    e.Code(),
					"message": e.Error(),
					"type":    e.Type().String(),
					"trace":   e.Trace(),
					"fields":  e.Fields(),
					"details": e.Details(),
				})
			}

			switch {
			case statusCode >= fiber.StatusInternalServerError:
				l.Error("request failed")
			case statusCode >= fiber.StatusBadRequest:
				l.Warn("request rejected")
			default:
				l.Info("request processed successfully")
			}

			return err
		},
	}
}

// handleWithRecovery executes the next middleware and recovers from panics.
func handleWithRecovery(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("panic recovered at logger middleware", r)
		}
	}()

	return c.Next()
}

func panicError(msg string, r any) error {
	stackTrace := make([]byte, 4096) //nolint:mnd // 4KB is enough for the top frames
	stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

	return errx.New(
		msg,
		errx.WithDetails(errx.D{
			"stack_trace":   string(stackTrace),
			"panic_message": r,
		}),
	)
}
