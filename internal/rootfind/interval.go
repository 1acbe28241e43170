package rootfind

import "math"

// Interval is a pair of endpoints with A <= B, or two NaNs when no usable
// interval exists.
type Interval struct {
	A, B Real
}

// Between returns the interval spanned by a and b, in either order.
func Between(a, b Real) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{A: a, B: b}
}

// NoInterval returns the NaN interval that marks a failed bracketing search.
func NoInterval() Interval {
	return Interval{A: nan(), B: nan()}
}

// Bracket runs BracketInterval from the seed x1 with initial step h. When
// the search fails it reports the failure and returns NoInterval; solvers
// built on that interval fail with ErrNoBracket.
func Bracket(f Func, x1, h Real, maxIter uint, opts ...Option) Interval {
	low, high, found := BracketInterval(f, x1, h, maxIter, opts...)
	if !found {
		cfg := newSettings(opts)
		cfg.reporter.Warn("could not find an interval, the function may have no zero", map[string]interface{}{
			"x1":       x1,
			"h":        h,
			"max_iter": maxIter,
		})
		return NoInterval()
	}
	return Interval{A: low, B: high}
}

// Valid reports whether both endpoints are numbers.
func (iv Interval) Valid() bool {
	return !math.IsNaN(iv.A) && !math.IsNaN(iv.B)
}

// Width returns B-A.
func (iv Interval) Width() Real {
	return iv.B - iv.A
}

// Contains reports whether x lies in the closed interval.
func (iv Interval) Contains(x Real) bool {
	return iv.A <= x && x <= iv.B
}

func noBracket(component string) error {
	return newError(ErrNoBracket, "interval endpoints are NaN").
		WithOperation("solve").
		WithComponent(component)
}

func noSignChange(component string, iv Interval, ya, yb Real) error {
	return newError(ErrSignChange, "f(%g)=%g, f(%g)=%g", iv.A, ya, iv.B, yb).
		WithOperation("solve").
		WithComponent(component)
}

func tooManyIterations(component string, maxIt uint) error {
	return newError(ErrMaxIterations, "no convergence after %d iterations", maxIt).
		WithOperation("solve").
		WithComponent(component)
}

// chord is the bracket state shared by RegulaFalsi and Bisection.
type chord struct {
	a, b   Real
	ya, yb Real
}

// replace moves the endpoint whose residual has the same sign as yc to c.
func (ch chord) replace(c, yc Real) chord {
	if yc*ch.ya < 0 {
		ch.b, ch.yb = c, yc
	} else {
		ch.a, ch.ya = c, yc
	}
	return ch
}
