package telemetry

import (
	"go.opentelemetry.io/otel/metric"
)

// Instruments are the metrics recorded by the HTTP layer.
type Instruments struct {
	RequestsTotal     metric.Int64Counter
	ErrorsTotal       metric.Int64Counter
	ActiveConnections metric.Int64UpDownCounter
	RequestDuration   metric.Float64Histogram
	ResponseSize      metric.Int64Histogram
	BackendDuration   metric.Float64Histogram
}

// NewInstruments creates all instruments on meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	var (
		in  Instruments
		err error
	)

	in.RequestsTotal, err = meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	in.ErrorsTotal, err = meter.Int64Counter(
		"http.errors.total",
		metric.WithDescription("Total number of HTTP errors"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	in.ActiveConnections, err = meter.Int64UpDownCounter(
		"http.active_connections",
		metric.WithDescription("Number of in-flight HTTP requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	in.RequestDuration, err = meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	in.ResponseSize, err = meter.Int64Histogram(
		"http.response.size",
		metric.WithDescription("HTTP response size"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	in.BackendDuration, err = meter.Float64Histogram(
		"inference.backend.duration",
		metric.WithDescription("Time spent in the inference backend"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &in, nil
}
