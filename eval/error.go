package eval

import (
	"fmt"
	"strings"

	"github.com/RuMaxwell/rumlisp/lexer"
)

// Frame is one entry of an EvalError's stack trace: the name of the
// closure or builtin whose call was unwinding when the error passed
// through it, and the call-site position.
type Frame struct {
	Name     string
	Position lexer.Position
}

func (f Frame) String() string {
	return fmt.Sprintf("%s %s", f.Name, f.Position.String())
}

// EvalError is RumLisp's runtime error representation: a message, an
// optional source position, and a stack trace accumulated as the error
// unwinds back up through enclosing closure/builtin calls (spec.md's
// "User-visible behavior" section — a location suffix " at line L,
// column C" followed by a "Trace\n  frame-name location\n  ..." block),
// grounded on the teacher's CreateError, which stamps every error with
// "[%d:%d] %s" built from the parser's current lexer position.
type EvalError struct {
	Message     string
	Position    lexer.Position
	HasPosition bool
	Trace       []Frame
}

func (e *EvalError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.HasPosition {
		fmt.Fprintf(&b, " at %s", e.Position.String())
	}
	if len(e.Trace) > 0 {
		b.WriteString("\nTrace")
		for _, frame := range e.Trace {
			fmt.Fprintf(&b, "\n  %s", frame.String())
		}
	}
	return b.String()
}

// newError builds a located EvalError, the evaluator's usual way of
// reporting a failure (undefined variable, arity mismatch, type
// mismatch, and so on).
func newError(pos lexer.Position, format string, args ...interface{}) *EvalError {
	return &EvalError{
		Message:     fmt.Sprintf(format, args...),
		Position:    pos,
		HasPosition: true,
	}
}

// NewError is newError exported for package builtin, whose implementation
// functions raise the same located-error shape the evaluator itself uses
// (e.g. the standardized "unaccepted arguments types" message).
func NewError(pos lexer.Position, format string, args ...interface{}) error {
	return newError(pos, format, args...)
}

// withFrame returns err augmented with one more trace frame, converting
// a plain error into an *EvalError on first contact (so errors raised by
// object.Closure.Call's arity check, which has no position of its own,
// still grow a trace as they cross each call boundary on the way out).
func withFrame(err error, name string, pos lexer.Position) error {
	if err == nil {
		return nil
	}
	evalErr, ok := err.(*EvalError)
	if !ok {
		evalErr = &EvalError{Message: err.Error()}
	}
	evalErr.Trace = append(evalErr.Trace, Frame{Name: name, Position: pos})
	return evalErr
}
