// Package otel provides OpenTelemetry integration for calc pipeline events.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zephyrtronium/calc"
)

// TracingHandler translates calc pipeline events into OpenTelemetry spans.
// Each run gets a root span, and each stage a child span.
type TracingHandler struct {
	tracer trace.Tracer

	mu       sync.Mutex
	runSpans map[string]trace.Span      // runID -> span
	runCtxs  map[string]context.Context // runID -> context (for child spans)
}

// NewTracingHandler creates a new TracingHandler that uses the given tracer
// to create spans from pipeline events.
func NewTracingHandler(tracer trace.Tracer) *TracingHandler {
	return &TracingHandler{
		tracer:   tracer,
		runSpans: make(map[string]trace.Span),
		runCtxs:  make(map[string]context.Context),
	}
}

// Handle processes a pipeline event. It implements calc.EventHandler.
func (h *TracingHandler) Handle(e calc.Event) {
	switch e.Kind {
	case calc.EventRunStarted:
		h.handleRunStarted(e)
	case calc.EventStageFinished, calc.EventStageFailed:
		h.handleStage(e)
	case calc.EventRunFinished:
		h.handleRunFinished(e)
	}
}

func (h *TracingHandler) handleRunStarted(e calc.Event) {
	ctx, span := h.tracer.Start(context.Background(), "calc.run",
		trace.WithAttributes(
			attribute.String("calc.run_id", e.RunID),
			attribute.String("calc.expr", e.Expr),
		),
		trace.WithTimestamp(e.Start),
	)

	h.mu.Lock()
	h.runSpans[e.RunID] = span
	h.runCtxs[e.RunID] = ctx
	h.mu.Unlock()
}

// handleStage records a completed stage as a child span. Stages are reported
// only once they end, so the span is started and ended together.
func (h *TracingHandler) handleStage(e calc.Event) {
	h.mu.Lock()
	parentCtx, ok := h.runCtxs[e.RunID]
	h.mu.Unlock()

	if !ok {
		// No parent run span; start from background context.
		parentCtx = context.Background()
	}

	_, span := h.tracer.Start(parentCtx, "calc."+e.Stage.String(),
		trace.WithAttributes(
			attribute.String("calc.run_id", e.RunID),
			attribute.String("calc.stage", e.Stage.String()),
		),
		trace.WithTimestamp(e.Start),
	)
	if e.Kind == calc.EventStageFailed {
		span.SetStatus(codes.Error, e.Err.Error())
		span.RecordError(e.Err, trace.WithTimestamp(e.Time))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.Time))
}

func (h *TracingHandler) handleRunFinished(e calc.Event) {
	h.mu.Lock()
	span, ok := h.runSpans[e.RunID]
	if ok {
		delete(h.runSpans, e.RunID)
		delete(h.runCtxs, e.RunID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	span.SetAttributes(attribute.String("calc.duration", e.Elapsed.String()))
	if e.Err != nil {
		span.SetStatus(codes.Error, e.Err.Error())
	} else {
		span.SetAttributes(attribute.Float64("calc.result", e.Result))
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.Time))
}

// ActiveRunSpanContext returns the SpanContext for the active run span
// identified by runID. Returns an empty SpanContext if not found.
func (h *TracingHandler) ActiveRunSpanContext(runID string) trace.SpanContext {
	h.mu.Lock()
	span, ok := h.runSpans[runID]
	h.mu.Unlock()

	if !ok {
		return trace.SpanContext{}
	}
	return span.SpanContext()
}

var _ calc.EventHandler = (*TracingHandler)(nil)
