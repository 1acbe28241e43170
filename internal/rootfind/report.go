package rootfind

import (
	"os"

	"go.uber.org/zap"

	"github.com/copyleftdev/zerofun/internal/logging"
)

// Reporter receives solver diagnostics. *logging.Logger satisfies it.
type Reporter interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
}

// Trace records the work done by the most recent Root or Solve call.
// Evaluations counts calls of the target function only; derivative calls
// made by Newton are not included.
type Trace struct {
	Iterations  int
	Evaluations int
}

func (t *Trace) reset() {
	if t != nil {
		*t = Trace{}
	}
}

// Option configures a solver or the bracketing search.
type Option func(*settings)

// WithReporter sends diagnostics to r.
func WithReporter(r Reporter) Option {
	return func(s *settings) {
		if r != nil {
			s.reporter = r
		}
	}
}

// Quiet discards all diagnostics.
func Quiet() Option {
	return WithReporter(nopReporter{})
}

// WithTrace makes every Root call reset t and fill it in.
func WithTrace(t *Trace) Option {
	return func(s *settings) {
		s.trace = t
	}
}

type settings struct {
	reporter Reporter
	trace    *Trace
}

func newSettings(opts []Option) settings {
	s := settings{
		reporter: logging.New(logging.InfoLevel, os.Stderr),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// counted wraps f so that evaluations are recorded in the trace.
func (s settings) counted(f Func) Func {
	if s.trace == nil {
		return f
	}
	t := s.trace
	return func(x Real) Real {
		t.Evaluations++
		return f(x)
	}
}

func (s settings) iteration() {
	if s.trace != nil {
		s.trace.Iterations++
	}
}

// finish turns a Root outcome into a Solve result.
func (s settings) finish(m Method, root Real, err error) Real {
	if err != nil {
		s.reporter.Warn("could not find the zero", map[string]interface{}{
			"method": string(m),
			"kind":   KindName(err),
			"error":  err.Error(),
		})
		return nan()
	}
	s.reporter.Debug("zero found", map[string]interface{}{
		"method": string(m),
		"root":   root,
	})
	return root
}

type nopReporter struct{}

func (nopReporter) Debug(string, ...map[string]interface{}) {}
func (nopReporter) Info(string, ...map[string]interface{})  {}
func (nopReporter) Warn(string, ...map[string]interface{})  {}

// ZapReporter adapts a zap logger to Reporter.
func ZapReporter(l *zap.Logger) Reporter {
	return zapReporter{l: l}
}

type zapReporter struct {
	l *zap.Logger
}

func (z zapReporter) Debug(msg string, fields ...map[string]interface{}) {
	z.l.Debug(msg, zapFields(fields)...)
}

func (z zapReporter) Info(msg string, fields ...map[string]interface{}) {
	z.l.Info(msg, zapFields(fields)...)
}

func (z zapReporter) Warn(msg string, fields ...map[string]interface{}) {
	z.l.Warn(msg, zapFields(fields)...)
}

func zapFields(fields []map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields[0]))
	for k, v := range fields[0] {
		out = append(out, zap.Any(k, v))
	}
	return out
}
