package rootfind

import (
	"errors"
	"fmt"
)

// Failure kinds. Errors returned by Root wrap exactly one of these.
var (
	// ErrSignChange means the function takes the same sign at both ends
	// of the interval.
	ErrSignChange = errors.New("function must change sign at the two end values")
	// ErrNoBracket means the bracketing search gave up, so the solver has
	// no usable interval.
	ErrNoBracket = errors.New("no bracketing interval")
	// ErrDegenerate means an algorithm-specific guard rejected an
	// ill-conditioned step.
	ErrDegenerate = errors.New("degenerate step")
	// ErrMaxIterations means the iteration cap was reached before the
	// convergence test was met.
	ErrMaxIterations = errors.New("maximum iterations exceeded")
)

// Error is a solver failure with the context it happened in.
type Error struct {
	// Kind is one of the package failure kinds.
	Kind error
	// Op is the operation that failed.
	Op string
	// Component is the solver or helper that failed.
	Component string
	// Message adds detail to Kind.
	Message string
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var prefix string
	if e.Component != "" && e.Op != "" {
		prefix = fmt.Sprintf("%s: %s", e.Component, e.Op)
	} else if e.Component != "" {
		prefix = e.Component
	} else if e.Op != "" {
		prefix = e.Op
	}

	msg := e.Kind.Error()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if prefix != "" {
		return fmt.Sprintf("%s: %s", prefix, msg)
	}
	return msg
}

// Unwrap returns the failure kind.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// WithComponent adds component context to the error.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindName returns a short stable name for the failure kind wrapped by err,
// "none" for a nil error and "unknown" for anything else.
func KindName(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrSignChange):
		return "sign_change"
	case errors.Is(err, ErrNoBracket):
		return "no_bracket"
	case errors.Is(err, ErrDegenerate):
		return "degenerate"
	case errors.Is(err, ErrMaxIterations):
		return "max_iterations"
	default:
		return "unknown"
	}
}
