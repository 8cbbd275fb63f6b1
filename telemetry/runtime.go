package telemetry

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel/metric"
)

// RegisterRuntimeMetrics reports heap and goroutine gauges on each collection.
func RegisterRuntimeMetrics(meter metric.Meter) error {
	heapGauge, err := meter.Int64ObservableGauge(
		"runtime.memory.heap.alloc",
		metric.WithDescription("Bytes of allocated heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return err
	}

	goroutineGauge, err := meter.Int64ObservableGauge(
		"runtime.goroutines",
		metric.WithDescription("Number of live goroutines"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		o.ObserveInt64(heapGauge, int64(m.Alloc))
		o.ObserveInt64(goroutineGauge, int64(runtime.NumGoroutine()))
		return nil
	}, heapGauge, goroutineGauge)

	return err
}
