package rootfind

import "math"

// stallFloor is the smallest chord fraction RegulaFalsi still treats as
// progress.
const stallFloor = 10 * machineEpsilon

// RegulaFalsi is the method of false position.
type RegulaFalsi struct {
	f    Func
	iv   Interval
	tol  Real
	tola Real
	cfg  settings
}

// NewRegulaFalsi returns a false-position solver on iv. It stops once
// |f(c)| <= tol*max(|f(a)|,|f(b)|) + tola. A step that moves the trial
// point by a negligible fraction of the bracket ends the search with
// ErrDegenerate when the residual is still above that bound.
func NewRegulaFalsi(f Func, iv Interval, tol, tola Real, opts ...Option) *RegulaFalsi {
	return &RegulaFalsi{f: f, iv: iv, tol: tol, tola: tola, cfg: newSettings(opts)}
}

// Method returns MethodRegulaFalsi.
func (s *RegulaFalsi) Method() Method { return MethodRegulaFalsi }

// Solve returns the zero Root finds, or NaN after reporting the failure.
func (s *RegulaFalsi) Solve() Real {
	root, err := s.Root()
	return s.cfg.finish(s.Method(), root, err)
}

// Root runs false position on the bracket.
func (s *RegulaFalsi) Root() (Real, error) {
	s.cfg.trace.reset()
	if !s.iv.Valid() {
		return nan(), noBracket("regula falsi")
	}
	f := s.cfg.counted(s.f)

	ch := chord{a: s.iv.A, b: s.iv.B}
	ch.ya, ch.yb = f(ch.a), f(ch.b)
	if ch.ya*ch.yb > 0 {
		return nan(), noSignChange("regula falsi", s.iv, ch.ya, ch.yb)
	}

	check := s.tol*math.Max(math.Abs(ch.ya), math.Abs(ch.yb)) + s.tola
	c, yc := ch.a, ch.ya
	incr := math.MaxFloat64
	for math.Abs(yc) > check && incr > stallFloor {
		s.cfg.iteration()
		var ok bool
		c, incr, ok = ch.falsePosition()
		if !ok {
			return nan(), newError(ErrDegenerate, "chord is failing on [%g, %g]", ch.a, ch.b).
				WithOperation("solve").
				WithComponent("regula falsi")
		}
		yc = f(c)
		ch = ch.replace(c, yc)
	}
	if !(math.Abs(yc) <= check) {
		return nan(), newError(ErrDegenerate, "chord stalled at %g with residual %g above %g", c, yc, check).
			WithOperation("solve").
			WithComponent("regula falsi")
	}
	return c, nil
}

// falsePosition returns the point where the chord through the bracket
// crosses zero, and the smaller of the two fractions it splits the bracket
// into. ok is false when the fractions fall outside [0, 1].
func (ch chord) falsePosition() (c, incr Real, ok bool) {
	incra := -ch.ya / (ch.yb - ch.ya)
	incrb := 1 - incra
	incr = math.Min(incra, incrb)
	if !(math.Max(incra, incrb) <= 1 && incr >= 0) {
		return nan(), incr, false
	}
	return ch.a + incra*(ch.b-ch.a), incr, true
}
