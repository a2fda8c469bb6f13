package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/fleetops/depot-backend/pkg/logger"
)

// Mutations crossing this take longer than a healthy row-lock commit
// should; flag them even when they succeed.
const slowMutation = 2 * time.Second

// StructuredLoggingMiddleware writes one structured completion line per
// request, tagged with the backend service and route class
func StructuredLoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()
		class := ClassifyRoute(c.Method(), c.Path())
		backend := determineServiceFromPath(c.Path())

		traceID := "no-trace"
		if span := trace.SpanFromContext(c.UserContext()); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}

		logEvent := logger.WithContext(c.UserContext()).Info()
		switch {
		case statusCode >= 500:
			logEvent = logger.WithContext(c.UserContext()).Error()
		case statusCode >= 400:
			logEvent = logger.WithContext(c.UserContext()).Warn()
		case class == ClassMutation && duration > slowMutation:
			logEvent = logger.WithContext(c.UserContext()).Warn().Bool("slow", true)
		}

		logEvent.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route_class", string(class)).
			Str("backend", backend).
			Int("status", statusCode).
			Dur("duration", duration).
			Int("response_size", len(c.Response().Body())).
			Str("ip", c.IP()).
			Str("trace_id", traceID).
			Str("request_id", c.Get("X-Request-Id")).
			Msg("Gateway request completed")

		if err != nil {
			logger.Error(c.UserContext()).
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("backend", backend).
				Str("trace_id", traceID).
				Msg("Gateway request error")
		}

		return err
	}
}
