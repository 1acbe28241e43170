package rootfind

import "math"

// Secant iterates secant steps from iv.A toward the fixed companion point
// iv.B: every step draws the line through the current point and iv.B, and
// only the current point moves. It does not need the interval to bracket a
// zero.
type Secant struct {
	f     Func
	iv    Interval
	tol   Real
	tola  Real
	maxIt uint
	cfg   settings
}

// NewSecant returns a secant solver started from iv.A and iv.B.
// It stops once |f(c)| <= tol*|f(iv.A)| + tola and fails after maxIt steps.
func NewSecant(f Func, iv Interval, tol, tola Real, maxIt uint, opts ...Option) *Secant {
	return &Secant{f: f, iv: iv, tol: tol, tola: tola, maxIt: maxIt, cfg: newSettings(opts)}
}

// Method returns MethodSecant.
func (s *Secant) Method() Method { return MethodSecant }

// Solve returns the zero Root finds, or NaN after reporting the failure.
func (s *Secant) Solve() Real {
	root, err := s.Root()
	return s.cfg.finish(s.Method(), root, err)
}

// Root iterates secant steps from iv.A against the fixed point iv.B.
func (s *Secant) Root() (Real, error) {
	s.cfg.trace.reset()
	if !s.iv.Valid() {
		return nan(), noBracket("secant")
	}
	f := s.cfg.counted(s.f)

	st := secantState{a: s.iv.A, b: s.iv.B}
	st.ya = f(st.a)
	check := s.tol*math.Abs(st.ya) + s.tola
	if s.maxIt == 0 {
		return nan(), tooManyIterations("secant", s.maxIt)
	}
	if math.Abs(st.ya) <= check {
		return st.a, nil
	}
	st.yb = f(st.b)

	for iter := uint(0); iter < s.maxIt; iter++ {
		s.cfg.iteration()
		c := st.next()
		yc := f(c)
		if math.Abs(yc) <= check {
			return c, nil
		}
		st = st.shift(c, yc)
	}
	return nan(), tooManyIterations("secant", s.maxIt)
}

// secantState holds the current point a and the fixed companion b.
type secantState struct {
	a, b   Real
	ya, yb Real
}

// next returns the zero of the line through (a, ya) and (b, yb).
func (st secantState) next() Real {
	return st.a - st.ya*(st.b-st.a)/(st.yb-st.ya)
}

// shift makes c the current point. The companion stays where it is.
func (st secantState) shift(c, yc Real) secantState {
	st.a, st.ya = c, yc
	return st
}
