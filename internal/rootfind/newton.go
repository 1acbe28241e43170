package rootfind

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// Newton is Newton's method with a caller-supplied derivative.
type Newton struct {
	f     Func
	df    Func
	x0    Real
	tol   Real
	tola  Real
	maxIt uint
	cfg   settings
}

// NewNewton returns a Newton solver started at x0. It stops once
// |f(x)| <= tol*|f(x0)| + tola and fails after maxIt steps. A vanishing
// derivative is not guarded against: the resulting Inf or NaN runs the
// iteration into its cap.
func NewNewton(f, df Func, x0, tol, tola Real, maxIt uint, opts ...Option) *Newton {
	return &Newton{f: f, df: df, x0: x0, tol: tol, tola: tola, maxIt: maxIt, cfg: newSettings(opts)}
}

// Method returns MethodNewton.
func (s *Newton) Method() Method { return MethodNewton }

// Solve returns the zero Root finds, or NaN after reporting the failure.
func (s *Newton) Solve() Real {
	root, err := s.Root()
	return s.cfg.finish(s.Method(), root, err)
}

// Root iterates Newton steps from x0 using the supplied derivative.
func (s *Newton) Root() (Real, error) {
	s.cfg.trace.reset()
	return s.iterate("newton", s.cfg.counted(s.f), s.df)
}

func (s *Newton) iterate(component string, f, df Func) (Real, error) {
	x := s.x0
	y := f(x)
	check := s.tol*math.Abs(y) + s.tola
	if s.maxIt == 0 {
		return nan(), tooManyIterations(component, s.maxIt)
	}
	for iter := uint(0); !(math.Abs(y) <= check); iter++ {
		if iter == s.maxIt {
			return nan(), tooManyIterations(component, s.maxIt)
		}
		s.cfg.iteration()
		x = newtonStep(x, y, df(x))
		y = f(x)
	}
	return x, nil
}

func newtonStep(x, y, dy Real) Real {
	return x - y/dy
}

// QuasiNewton is Newton's method with the derivative replaced by the
// centred difference (f(x+h) - f(x-h)) / 2h.
type QuasiNewton struct {
	Newton
	h Real
}

// NewQuasiNewton returns a quasi-Newton solver started at x0 with
// difference step h. A zero h selects the default step of the centred
// difference formula.
func NewQuasiNewton(f Func, x0, h, tol, tola Real, maxIt uint, opts ...Option) *QuasiNewton {
	return &QuasiNewton{
		Newton: Newton{f: f, x0: x0, tol: tol, tola: tola, maxIt: maxIt, cfg: newSettings(opts)},
		h:      h,
	}
}

// Method returns MethodQuasiNewton.
func (s *QuasiNewton) Method() Method { return MethodQuasiNewton }

// Solve returns the zero Root finds, or NaN after reporting the failure.
func (s *QuasiNewton) Solve() Real {
	root, err := s.Root()
	return s.cfg.finish(s.Method(), root, err)
}

// Root iterates Newton steps from x0 with a centred difference in place
// of the derivative.
func (s *QuasiNewton) Root() (Real, error) {
	s.cfg.trace.reset()
	f := s.cfg.counted(s.f)
	return s.iterate("quasi-newton", f, CentralDifference(f, s.h))
}

// CentralDifference returns the centred finite-difference derivative of f
// with step h.
func CentralDifference(f Func, h Real) Func {
	settings := &fd.Settings{Formula: fd.Central, Step: h}
	return func(x Real) Real {
		return fd.Derivative(f, x, settings)
	}
}
