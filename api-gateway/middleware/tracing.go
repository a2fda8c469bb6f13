package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware opens a server span per request and propagates the
// trace context to the backend, so a reserve call can be followed from
// the gateway through the stock service down to the row lock.
func TracingMiddleware() fiber.Handler {
	tracer := otel.Tracer("depot-gateway")

	return func(c *fiber.Ctx) error {
		class := ClassifyRoute(c.Method(), c.Path())
		backend := determineServiceFromPath(c.Path())

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Method()),
			attribute.String("http.url", c.OriginalURL()),
			attribute.String("http.target", c.Path()),
			attribute.String("http.client_ip", c.IP()),
			attribute.String("depot.route_class", string(class)),
		}
		if backend != "" {
			attrs = append(attrs, attribute.String("depot.backend", backend))
		}

		ctx, span := tracer.Start(
			c.UserContext(),
			c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		c.SetUserContext(ctx)

		// Hand the trace context to the backend service
		carrier := propagation.HeaderCarrier{}
		otel.GetTextMapPropagator().Inject(ctx, carrier)
		for key, values := range carrier {
			for _, value := range values {
				c.Request().Header.Set(key, value)
			}
		}

		if span.SpanContext().HasTraceID() {
			c.Set("X-Trace-Id", span.SpanContext().TraceID().String())
		}

		err := c.Next()

		statusCode := c.Response().StatusCode()
		span.SetAttributes(
			attribute.Int("http.status_code", statusCode),
			attribute.Int("http.response.size", len(c.Response().Body())),
		)

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case statusCode >= 500:
			span.SetStatus(codes.Error, "Server Error")
		case statusCode == fiber.StatusConflict && class == ClassMutation:
			// Protocol rejections (insufficient stock, over-release) are
			// expected outcomes, not failures
			span.SetStatus(codes.Ok, "Protocol rejection")
		case statusCode >= 400:
			span.SetStatus(codes.Error, "Client Error")
		default:
			span.SetStatus(codes.Ok, "Success")
		}

		return err
	}
}
