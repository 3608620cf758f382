package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/catalog/http/server"
	"github.com/rise-and-shine/catalog/meta"
	"github.com/rise-and-shine/catalog/observability/tracing"
)

// HeaderTraceID is the response header carrying the request trace id.
const HeaderTraceID = "X-Trace-ID"

// NewMetaInjectMW creates a middleware that injects request metadata into the context.
//
// It collects the trace id (from the active span, or a generated one), the client supplied
// X-Request-ID, IP address, user agent and accept-language, plus the service info
// registered with meta.SetServiceInfo. The trace id is echoed in the X-Trace-ID header.
func NewMetaInjectMW() server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			traceID := tracing.GetStartingTraceID(ctx)
			name, version := meta.ServiceInfo()

			ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:        traceID,
				meta.RequestID:      c.Get(fiber.HeaderXRequestID),
				meta.IPAddress:      c.IP(),
				meta.UserAgent:      c.Get(fiber.HeaderUserAgent),
				meta.AcceptLanguage: c.Get(fiber.HeaderAcceptLanguage),
				meta.ServiceName:    name,
				meta.ServiceVersion: version,
			})
			c.SetUserContext(ctx)
			c.Set(HeaderTraceID, traceID)

			return c.Next()
		},
	}
}
