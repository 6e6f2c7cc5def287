package middleware

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Trace opens a server span per request using the tracer provider tp, or the
// global provider when tp is nil. Spans are named "METHOD path" and marked as
// errors for 5xx responses.
func Trace(tp trace.TracerProvider, name string) func(http.Handler) http.Handler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(name)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(
				r.Context(),
				r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			sw := NewStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.response.status_code", sw.Status))
			if sw.Status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, fmt.Sprintf("status %d", sw.Status))
			}
		})
	}
}
