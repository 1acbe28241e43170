package rootfind

import "math"

// Brent is the Brent-Dekker method: inverse quadratic interpolation or a
// secant step when it behaves, bisection when it does not.
type Brent struct {
	f     Func
	iv    Interval
	tol   Real
	maxIt uint
	cfg   settings
}

// NewBrent returns a Brent solver on iv. It stops when f is exactly zero at
// the trial point or the bracket is narrower than tol, and fails after maxIt
// steps.
func NewBrent(f Func, iv Interval, tol Real, maxIt uint, opts ...Option) *Brent {
	return &Brent{f: f, iv: iv, tol: tol, maxIt: maxIt, cfg: newSettings(opts)}
}

// Method returns MethodBrent.
func (s *Brent) Method() Method { return MethodBrent }

// Solve returns the zero Root finds, or NaN after reporting the failure.
func (s *Brent) Solve() Real {
	root, err := s.Root()
	return s.cfg.finish(s.Method(), root, err)
}

// Root runs Brent's method on the bracket and returns the last trial point.
func (s *Brent) Root() (Real, error) {
	s.cfg.trace.reset()
	if !s.iv.Valid() {
		return nan(), noBracket("brent")
	}
	f := s.cfg.counted(s.f)

	a, b := s.iv.A, s.iv.B
	ya, yb := f(a), f(b)
	if ya*yb >= 0 {
		switch {
		case ya == 0:
			return a, nil
		case yb == 0:
			return b, nil
		default:
			return nan(), noSignChange("brent", s.iv, ya, yb)
		}
	}
	if s.maxIt == 0 {
		return nan(), tooManyIterations("brent", s.maxIt)
	}

	st := newBrentState(a, b, ya, yb)
	for iter := uint(1); ; iter++ {
		s.cfg.iteration()
		x, bisected := st.trial(s.tol)
		y := f(x)
		st = st.advance(x, y, bisected)
		if y == 0 || math.Abs(st.b-st.a) <= s.tol {
			return x, nil
		}
		if iter >= s.maxIt {
			return nan(), tooManyIterations("brent", s.maxIt)
		}
	}
}

// brentState is the bookkeeping of one Brent iteration. b is the best
// estimate, a the contrapoint with f(a) of opposite sign, c the previous b
// and d the b before that.
type brentState struct {
	a, b, c, d Real
	ya, yb, yc Real
	// bisected is true when the last step was a bisection.
	bisected bool
}

func newBrentState(a, b, ya, yb Real) brentState {
	if math.Abs(ya) < math.Abs(yb) {
		a, b = b, a
		ya, yb = yb, ya
	}
	return brentState{a: a, b: b, c: a, d: a, ya: ya, yb: yb, yc: ya, bisected: true}
}

// trial proposes the next point and whether it had to fall back to
// bisection.
func (st brentState) trial(tol Real) (s Real, bisected bool) {
	if st.ya != st.yc && st.yb != st.yc {
		yab := st.ya - st.yb
		yac := st.ya - st.yc
		ycb := st.yc - st.yb
		s = st.a*st.yb*st.yc/(yab*yac) +
			st.b*st.ya*st.yc/(yab*ycb) -
			st.c*st.ya*st.yb/(yac*ycb)
	} else {
		s = st.b - st.yb*(st.b-st.a)/(st.yb-st.ya)
	}

	lo := (3*st.a + st.b) / 4
	reject := (s-lo)*(s-st.b) >= 0 ||
		(st.bisected && math.Abs(s-st.b) >= math.Abs(st.b-st.c)/2) ||
		(!st.bisected && math.Abs(s-st.b) >= math.Abs(st.c-st.d)/2) ||
		(st.bisected && math.Abs(st.b-st.c) < tol) ||
		(!st.bisected && math.Abs(st.c-st.d) < tol)
	if reject || math.IsNaN(s) {
		return (st.a + st.b) / 2, true
	}
	return s, false
}

// advance folds the evaluated trial point into the bracket, keeping b the
// endpoint with the smaller residual.
func (st brentState) advance(s, ys Real, bisected bool) brentState {
	next := brentState{
		a: st.a, b: st.b, c: st.b, d: st.c,
		ya: st.ya, yb: st.yb, yc: st.yb,
		bisected: bisected,
	}
	if st.ya*ys < 0 {
		next.b, next.yb = s, ys
	} else {
		next.a, next.ya = s, ys
	}
	if math.Abs(next.ya) < math.Abs(next.yb) {
		next.a, next.b = next.b, next.a
		next.ya, next.yb = next.yb, next.ya
	}
	return next
}
