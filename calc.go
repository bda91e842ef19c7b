package calc

import (
	"time"

	"github.com/google/uuid"
)

// Trace holds the intermediate results of a successful evaluation.
type Trace struct {
	Expr   string
	Tokens []Token
	AST    Node
	Result float64
}

// Pipeline evaluates expressions and reports each step to event handlers.
// The zero value is ready to use and reports to nothing. A Pipeline is safe
// for concurrent use if its handlers are.
type Pipeline struct {
	handlers []EventHandler
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithHandlers adds event handlers. Handlers receive events in the order
// they were added.
func WithHandlers(h ...EventHandler) Option {
	return func(p *Pipeline) {
		p.handlers = append(p.handlers, h...)
	}
}

// NewPipeline creates a pipeline with the given options applied in order.
func NewPipeline(opts ...Option) *Pipeline {
	var p Pipeline
	for _, opt := range opts {
		opt(&p)
	}
	return &p
}

// Run evaluates an expression. If any stage fails, the error is a
// *StageError.
func (p *Pipeline) Run(expr string) (float64, error) {
	t, err := p.RunTrace(expr)
	if err != nil {
		return 0, err
	}
	return t.Result, nil
}

// RunTrace evaluates an expression and returns its tokens and syntax tree
// along with the result. If any stage fails, the error is a *StageError.
func (p *Pipeline) RunTrace(expr string) (*Trace, error) {
	r := p.begin(expr)
	t := Trace{Expr: expr}
	err := r.stage(StageLex, func() (err error) {
		t.Tokens, err = Tokenize(expr)
		return err
	})
	if err == nil {
		err = r.stage(StageParse, func() (err error) {
			t.AST, err = Parse(t.Tokens)
			return err
		})
	}
	if err == nil {
		err = r.stage(StageEval, func() (err error) {
			t.Result, err = Eval(t.AST)
			return err
		})
	}
	r.finish(t.Result, err)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// run tracks one call to a pipeline with handlers. A nil *run runs stages
// without reporting them.
type run struct {
	handlers []EventHandler
	id       string
	expr     string
	start    time.Time
}

func (p *Pipeline) begin(expr string) *run {
	if len(p.handlers) == 0 {
		return nil
	}
	r := &run{
		handlers: p.handlers,
		id:       uuid.NewString(),
		expr:     expr,
		start:    time.Now(),
	}
	r.emit(Event{Kind: EventRunStarted, Start: r.start, Time: r.start})
	return r
}

// stage runs f as stage s and tags its error.
func (r *run) stage(s Stage, f func() error) error {
	var start time.Time
	if r != nil {
		start = time.Now()
	}
	err := f()
	if err != nil {
		err = &StageError{Stage: s, Err: err}
	}
	if r == nil {
		return err
	}
	now := time.Now()
	e := Event{Kind: EventStageFinished, Stage: s, Start: start, Time: now, Elapsed: now.Sub(start)}
	if err != nil {
		e.Kind = EventStageFailed
		e.Err = err.(*StageError).Err
	}
	r.emit(e)
	return err
}

func (r *run) finish(result float64, err error) {
	if r == nil {
		return
	}
	now := time.Now()
	e := Event{Kind: EventRunFinished, Start: r.start, Time: now, Elapsed: now.Sub(r.start), Err: err}
	if err == nil {
		e.Result = result
	}
	r.emit(e)
}

func (r *run) emit(e Event) {
	e.RunID = r.id
	e.Expr = r.expr
	for _, h := range r.handlers {
		h.Handle(e)
	}
}

var defaultPipeline Pipeline

// Run is a shortcut to evaluate an expression without reporting events.
func Run(expr string) (float64, error) {
	return defaultPipeline.Run(expr)
}

// RunTrace is a shortcut to evaluate an expression and keep its intermediate
// results without reporting events.
func RunTrace(expr string) (*Trace, error) {
	return defaultPipeline.RunTrace(expr)
}
