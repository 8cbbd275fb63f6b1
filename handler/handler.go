package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"modelserver/backend"
	"modelserver/telemetry"
)

// HTTPHandler serves the liveness and inference routes.
type HTTPHandler struct {
	backend     backend.Backend
	log         *logrus.Logger
	instruments *telemetry.Instruments
	router      chi.Router
}

// NewHTTPHandler creates the handler around b. A nil in disables metrics.
func NewHTTPHandler(b backend.Backend, log *logrus.Logger, in *telemetry.Instruments) *HTTPHandler {
	if in == nil {
		// the noop meter hands out instruments without validating or
		// registering them, so it has no error path
		in, _ = telemetry.NewInstruments(noop.NewMeterProvider().Meter(telemetry.ScopeName))
	}
	h := &HTTPHandler{
		backend:     b,
		log:         log,
		instruments: in,
	}
	h.router = h.routes()
	return h
}

func (h *HTTPHandler) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(h.accessLog)
	r.Use(chimiddleware.Recoverer)

	ping := r.With(h.observe("ping"))
	ping.Get(pingPath, h.ping)
	ping.Head(pingPath, h.ping)
	r.Options(pingPath, allow(pingMethods))

	r.With(h.observe("invocations")).Post(invocationsPath, h.invocations)
	r.Options(invocationsPath, allow(invocationsMethods))
	return r
}

// allow answers an OPTIONS request with the methods a route accepts.
func allow(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", methods)
		w.WriteHeader(http.StatusOK)
	}
}

// ServeHTTP implements the http.Handler interface for HTTPHandler.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// ping answers the container liveness probe.
func (h *HTTPHandler) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", pingContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(pingBody))
}

// invocations hands the raw request body to the backend and writes its
// prediction back unchanged.
func (h *HTTPHandler) invocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.recordError(ctx, "read_body")
		h.logAndReturnError(w, r, "Bad Request: unable to read body", http.StatusBadRequest)
		return
	}
	r.Body.Close()

	start := time.Now()
	prediction, err := h.backend.Score(ctx, &backend.Request{
		Body:        body,
		ContentType: r.Header.Get("Content-Type"),
		Accept:      r.Header.Get("Accept"),
	})
	h.instruments.BackendDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		h.handleBackendError(w, r, err)
		return
	}

	contentType := prediction.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(prediction.Body)
}

func (h *HTTPHandler) handleBackendError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	var statusErr *backend.StatusError

	switch {
	case errors.Is(err, context.Canceled):
		h.recordError(ctx, "client_canceled")
		h.log.Debugf("Client %s disconnected", r.RemoteAddr)
		w.WriteHeader(statusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		h.recordError(ctx, "backend_timeout")
		h.logAndReturnError(w, r, "Gateway Timeout: model server did not answer in time", http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &statusErr), errors.Is(err, backend.ErrUnavailable):
		h.recordError(ctx, "backend_unavailable")
		h.logAndReturnError(w, r, "Bad Gateway: failed to reach backend", http.StatusBadGateway, err.Error())
	default:
		h.recordError(ctx, "backend_error")
		h.logAndReturnError(w, r, "Internal Server Error", http.StatusInternalServerError, err.Error())
	}
}

func (h *HTTPHandler) recordError(ctx context.Context, errorType string) {
	h.instruments.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(errorTypeAttr(errorType)))
}
