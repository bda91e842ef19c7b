package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zephyrtronium/calc"
)

// MetricsHandler translates calc pipeline events into OpenTelemetry metrics.
// It counts runs and stage failures and records run durations.
type MetricsHandler struct {
	runs          metric.Int64Counter
	stageFailures metric.Int64Counter
	runDuration   metric.Float64Histogram
}

// NewMetricsHandler creates a MetricsHandler that uses the given meter to create
// instruments for recording calc pipeline metrics.
func NewMetricsHandler(meter metric.Meter) (*MetricsHandler, error) {
	runs, err := meter.Int64Counter("calc.runs",
		metric.WithDescription("Number of evaluated expressions"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("calc.stage.failures",
		metric.WithDescription("Number of failed pipeline stages"),
	)
	if err != nil {
		return nil, err
	}

	dur, err := meter.Float64Histogram("calc.run.duration",
		metric.WithDescription("Duration of expression evaluation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsHandler{
		runs:          runs,
		stageFailures: failures,
		runDuration:   dur,
	}, nil
}

// Handle processes a pipeline event and records the appropriate metrics.
// It implements calc.EventHandler.
func (h *MetricsHandler) Handle(e calc.Event) {
	ctx := context.Background()
	switch e.Kind {
	case calc.EventStageFailed:
		h.stageFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("calc.stage", e.Stage.String()),
		))
	case calc.EventRunFinished:
		status := "ok"
		if e.Err != nil {
			status = "failed"
		}
		attrs := metric.WithAttributes(attribute.String("calc.status", status))
		h.runs.Add(ctx, 1, attrs)
		h.runDuration.Record(ctx, e.Elapsed.Seconds(), attrs)
	}
}

var _ calc.EventHandler = (*MetricsHandler)(nil)
