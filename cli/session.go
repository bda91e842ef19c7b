package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/davecgh/go-spew/spew"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/config"
	"github.com/zephyrtronium/calc/history"
	calcotel "github.com/zephyrtronium/calc/otel"
)

const instrumentation = "github.com/zephyrtronium/calc"

// dumper shows the structure of syntax trees rather than their String forms.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// session holds everything one invocation of calc evaluates with.
type session struct {
	cfg      config.Config
	verbose  bool
	dump     bool
	pipeline *calc.Pipeline
	store    history.Store
	tp       *sdktrace.TracerProvider
	logger   *slog.Logger
	out      io.Writer
}

func newSession(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) (*session, error) {
	s := &session{
		cfg:     cfg,
		verbose: cfg.Verbose,
		logger:  logger,
		out:     out,
	}

	if cfg.History.Path != "" {
		store, err := history.NewSQLiteStore(history.SQLiteStoreConfig{
			DSN:        cfg.History.Path,
			MaxEntries: cfg.History.MaxEntries,
		})
		if err != nil {
			return nil, err
		}
		s.store = store
		logger.Debug("history in sqlite", "path", cfg.History.Path)
	} else {
		s.store = history.NewMemStore()
	}
	handlers := []calc.EventHandler{history.NewRecorder(s.store, logger)}

	if cfg.Telemetry.Endpoint != "" {
		tp, err := calcotel.NewTracerProvider(ctx, calcotel.Exporter{
			Endpoint: cfg.Telemetry.Endpoint,
			Insecure: cfg.Telemetry.Insecure,
			Service:  cfg.Telemetry.Service,
		})
		if err != nil {
			s.store.Close()
			return nil, err
		}
		s.tp = tp
		th := calcotel.NewTracingHandler(tp.Tracer(instrumentation))
		handlers = append(handlers, th, traceLogger(th, logger))
		logger.Debug("exporting spans", "endpoint", cfg.Telemetry.Endpoint)
	}

	// The global meter provider is a no-op unless an embedding program sets one.
	mh, err := calcotel.NewMetricsHandler(otel.Meter(instrumentation))
	if err != nil {
		logger.Warn("metrics disabled", "error", err)
	} else {
		handlers = append(handlers, mh)
	}

	s.pipeline = calc.NewPipeline(calc.WithHandlers(handlers...))
	return s, nil
}

// traceLogger logs the trace ID of each run as it starts. It must follow th
// in the handler list so that the run span exists.
func traceLogger(th *calcotel.TracingHandler, logger *slog.Logger) calc.EventHandler {
	return calc.EventHandlerFunc(func(e calc.Event) {
		if e.Kind != calc.EventRunStarted {
			return
		}
		sc := th.ActiveRunSpanContext(e.RunID)
		if !sc.IsValid() {
			return
		}
		logger.Debug("run traced", "run_id", e.RunID, "trace_id", sc.TraceID().String())
	})
}

// close flushes spans and releases the history store.
func (s *session) close() {
	if s.tp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.tp.Shutdown(ctx); err != nil {
			s.logger.Warn("flushing spans", "error", err)
		}
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing history", "error", err)
	}
}

// eval runs one expression and prints its result to out. In verbose mode it
// also prints each stage's output.
func (s *session) eval(expr string) error {
	s.logger.Debug("evaluating", "expr", expr)
	t, err := s.pipeline.RunTrace(expr)
	if err != nil {
		return err
	}
	if s.verbose {
		fmt.Fprintln(s.out, "\n=== TOKENIZATION ===")
		fmt.Fprintln(s.out, "Input:", t.Expr)
		fmt.Fprintln(s.out, "Tokens:", t.Tokens)
		fmt.Fprintln(s.out, "\n=== PARSING ===")
		fmt.Fprintln(s.out, "AST:", t.AST)
		fmt.Fprintln(s.out, "\n=== EVALUATION ===")
		fmt.Fprintf(s.out, "Result: "+s.cfg.Format+"\n", t.Result)
	}
	if s.dump {
		dumper.Fdump(s.out, t.AST)
	}
	if !s.verbose {
		fmt.Fprintf(s.out, s.cfg.Format+"\n", t.Result)
	}
	return nil
}

// printHistory prints recent entries, newest first.
func (s *session) printHistory(ctx context.Context) error {
	entries, err := s.store.Recent(ctx, s.cfg.History.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No history.")
		return nil
	}
	for _, e := range entries {
		if e.Failed() {
			fmt.Fprintf(s.out, "%s  ! %s\n", e.Expr, e.Error)
			continue
		}
		fmt.Fprintf(s.out, "%s  = "+s.cfg.Format+"\n", e.Expr, e.Result)
	}
	return nil
}
