package calc

import "strconv"

// LexError indicates invalid input text. It implements InputError.
type LexError struct {
	// Col is the byte offset of the invalid text.
	Col int
	// Reason describes the problem, e.g. "multiple decimal points".
	Reason string
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Reason)
}

func (err *LexError) Pos() int {
	return err.Col
}

// ParseError indicates a token sequence that does not form an expression. It
// implements InputError.
type ParseError struct {
	// Col is the byte offset of the offending token.
	Col int
	// Expected names the construct the parser required: "factor", or a token
	// kind name such as "RPAREN" or "END_OF_INPUT".
	Expected string
	// Found is the kind of the offending token.
	Found TokenKind
	// Text is the source text of the offending token.
	Text string
	// Reason, if set, describes a failure other than a mismatched token.
	Reason string
}

func (err *ParseError) Error() string {
	switch {
	case err.Reason != "":
		return errpos(err.Col, err.Reason)
	case err.Found == TokenEOF && err.Expected == factorConstruct:
		return errpos(err.Col, "unexpected end of input")
	case err.Expected == TokenEOF.String():
		return errpos(err.Col, "unexpected trailing token: "+err.Found.String()+" "+strconv.Quote(err.Text))
	default:
		return errpos(err.Col, "expected "+err.Expected+", found "+err.Found.String())
	}
}

func (err *ParseError) Pos() int {
	return err.Col
}

// EvalError indicates an arithmetic operation with no result. It implements
// InputError.
type EvalError struct {
	// Col is the byte offset of the operator.
	Col int
	// Reason describes the problem.
	Reason string
}

func (err *EvalError) Error() string {
	return errpos(err.Col, err.Reason)
}

func (err *EvalError) Pos() int {
	return err.Col
}

// Stage identifies one step of evaluating an expression.
type Stage int8

const (
	stageNone Stage = iota
	StageLex
	StageParse
	StageEval
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lexing"
	case StageParse:
		return "parsing"
	case StageEval:
		return "evaluation"
	default:
		return "Stage(" + strconv.Itoa(int(s)) + ")"
	}
}

// StageError is an error from Run tagged with the stage that failed. Err is
// a *LexError, *ParseError, or *EvalError according to Stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (err *StageError) Error() string {
	return err.Stage.String() + " failed: " + err.Err.Error()
}

func (err *StageError) Unwrap() error {
	return err.Err
}

// Pos returns the position of the wrapped error.
func (err *StageError) Pos() int {
	if e, ok := err.Err.(InputError); ok {
		return e.Pos()
	}
	return -1
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return "offset " + strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the source of the text that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*EvalError)(nil)
	_ InputError = (*StageError)(nil)
)
