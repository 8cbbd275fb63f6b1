package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"modelserver/telemetry"
)

func errorTypeAttr(errorType string) attribute.KeyValue {
	return attribute.String("error_type", errorType)
}

// routePattern is the chi pattern that matched r, or its path outside a router.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// observe wraps a route with a server span and request metrics.
func (h *HTTPHandler) observe(handlerName string) func(http.Handler) http.Handler {
	tracer := otel.Tracer(telemetry.ScopeName)
	propagator := otel.GetTextMapPropagator()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, handlerName,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPMethod(r.Method),
					semconv.HTTPRoute(routePattern(r)),
					semconv.HTTPTarget(r.URL.String()),
					attribute.String("handler", handlerName),
				),
			)
			defer span.End()

			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			start := time.Now()
			h.instruments.ActiveConnections.Add(ctx, 1)
			defer h.instruments.ActiveConnections.Add(ctx, -1)

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			span.SetAttributes(semconv.HTTPStatusCode(rw.statusCode))
			if rw.statusCode >= 400 {
				span.SetStatus(codes.Error, http.StatusText(rw.statusCode))
			} else {
				span.SetStatus(codes.Ok, "")
			}

			h.instruments.RequestsTotal.Add(ctx, 1, metric.WithAttributes(
				attribute.String("handler", handlerName),
				attribute.String("method", r.Method),
				attribute.String("status", strconv.Itoa(rw.statusCode)),
			))
			h.instruments.RequestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
				attribute.String("handler", handlerName),
				attribute.String("method", r.Method),
			))
			h.instruments.ResponseSize.Record(ctx, rw.size, metric.WithAttributes(
				attribute.String("handler", handlerName),
			))
		})
	}
}

// responseWriter captures the status code and response size.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int64
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.wroteHeader {
		rw.statusCode = statusCode
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
