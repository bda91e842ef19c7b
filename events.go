package calc

import "time"

// EventKind identifies the type of a pipeline event.
type EventKind string

const (
	// EventRunStarted is emitted before scanning begins.
	EventRunStarted EventKind = "run.started"
	// EventStageFinished is emitted after a stage succeeds.
	EventStageFinished EventKind = "stage.finished"
	// EventStageFailed is emitted after a stage fails. No further stages run.
	EventStageFailed EventKind = "stage.failed"
	// EventRunFinished is emitted last, whether or not the run succeeded.
	EventRunFinished EventKind = "run.finished"
)

// Event describes progress through one call to a Pipeline.
type Event struct {
	Kind EventKind
	// RunID is shared by every event of one call.
	RunID string
	// Expr is the source expression.
	Expr string
	// Stage is set for stage events.
	Stage Stage
	// Start is when the run or stage began, and Time is when the event was
	// emitted. Elapsed is the difference for finish and failure events.
	Start   time.Time
	Time    time.Time
	Elapsed time.Duration
	// Result is the value of a successful run, set on EventRunFinished.
	Result float64
	// Err is set on EventStageFailed and on EventRunFinished for a failed
	// run. For EventRunFinished it is a *StageError.
	Err error
}

// EventHandler receives pipeline events. Handlers are called synchronously
// from the goroutine running the pipeline and must be safe for concurrent
// use when the pipeline is.
type EventHandler interface {
	Handle(Event)
}

// EventHandlerFunc adapts a function to an EventHandler.
type EventHandlerFunc func(Event)

// Handle calls f(e).
func (f EventHandlerFunc) Handle(e Event) {
	f(e)
}
