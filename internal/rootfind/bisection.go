package rootfind

import "math"

// Bisection halves a bracketing interval until it is at most 2*tol wide.
type Bisection struct {
	f   Func
	iv  Interval
	tol Real
	cfg settings
}

// NewBisection returns a bisection solver on iv.
func NewBisection(f Func, iv Interval, tol Real, opts ...Option) *Bisection {
	return &Bisection{f: f, iv: iv, tol: tol, cfg: newSettings(opts)}
}

// Method returns MethodBisection.
func (s *Bisection) Method() Method { return MethodBisection }

// Solve returns the midpoint Root finds, or NaN after reporting the failure.
func (s *Bisection) Solve() Real {
	root, err := s.Root()
	return s.cfg.finish(s.Method(), root, err)
}

// Root returns the midpoint of the final bracket. An endpoint or midpoint
// where f is exactly zero is returned as soon as it is seen.
func (s *Bisection) Root() (Real, error) {
	s.cfg.trace.reset()
	if !s.iv.Valid() {
		return nan(), noBracket("bisection")
	}
	f := s.cfg.counted(s.f)

	ch := chord{a: s.iv.A, b: s.iv.B}
	ch.ya, ch.yb = f(ch.a), f(ch.b)
	switch {
	case ch.ya*ch.yb > 0:
		return nan(), noSignChange("bisection", s.iv, ch.ya, ch.yb)
	case ch.ya == 0:
		return ch.a, nil
	case ch.yb == 0:
		return ch.b, nil
	}

	for math.Abs(ch.b-ch.a) > 2*s.tol {
		c, ok := ch.midpoint()
		if !ok {
			break
		}
		s.cfg.iteration()
		yc := f(c)
		if yc == 0 {
			return c, nil
		}
		ch = ch.replace(c, yc)
	}
	return (ch.a + ch.b) / 2, nil
}

// midpoint returns the centre of the bracket. ok is false once the
// endpoints are adjacent floats and no point lies strictly between them.
func (ch chord) midpoint() (c Real, ok bool) {
	c = (ch.a + ch.b) / 2
	return c, c > ch.a && c < ch.b
}
