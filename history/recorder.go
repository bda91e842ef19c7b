package history

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zephyrtronium/calc"
)

// Recorder writes one entry to a Store for each finished pipeline run. It
// implements calc.EventHandler.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

// NewRecorder creates a new Recorder.
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:  store,
		logger: logger,
	}
}

// Handle persists the outcome of a finished run. Other events are ignored.
func (r *Recorder) Handle(e calc.Event) {
	if e.Kind != calc.EventRunFinished {
		return
	}
	entry := Entry{
		ID:     e.RunID,
		Expr:   e.Expr,
		Result: e.Result,
		Time:   e.Time,
	}
	if e.Err != nil {
		entry.Error = e.Err.Error()
		var se *calc.StageError
		if errors.As(e.Err, &se) {
			entry.Stage = se.Stage.String()
		}
	}
	if err := r.store.Append(context.Background(), entry); err != nil {
		r.logger.Error("failed to record history",
			"run_id", e.RunID,
			"expr", e.Expr,
			"error", err,
		)
	}
}

var _ calc.EventHandler = (*Recorder)(nil)
