package rootfind

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// expandFactor is the geometric growth applied to the step of the
// bracketing search after every probe.
const expandFactor = 1.5

// BracketInterval looks for an interval across which f changes sign.
//
// The search probes x1 and x1+h, so the sign of h picks the initial
// direction. It then keeps advancing away from the probe with the larger
// residual magnitude, growing the step by expandFactor every time, until
// the two probes straddle a sign change or maxIter advances were made.
// The returned endpoints are ordered low <= high. f is evaluated at most
// maxIter+2 times.
func BracketInterval(f Func, x1, h Real, maxIter uint, opts ...Option) (low, high Real, found bool) {
	cfg := newSettings(opts)
	cfg.trace.reset()
	f = cfg.counted(f)

	x2 := x1 + h
	y1, y2 := f(x1), f(x2)
	step := math.Abs(h)

	for iter := uint(0); y1*y2 > 0 && iter < maxIter; iter++ {
		cfg.iteration()
		if math.Abs(y2) > math.Abs(y1) {
			x1, x2 = x2, x1
			y1, y2 = y2, y1
		}
		direction := 1.0
		if x2 < x1 {
			direction = -1.0
		}
		x1, y1 = x2, y2
		x2 += direction * step
		y2 = f(x2)
		step *= expandFactor
	}

	if x1 > x2 {
		x1, x2 = x2, x1
	}
	found = y1*y2 <= 0
	if found {
		cfg.reporter.Info("bracket interval found", map[string]interface{}{
			"low":  x1,
			"high": x2,
		})
	}
	return x1, x2, found
}

// Scan samples f at n evenly spaced points of [lo, hi] and returns the
// first sub-interval whose endpoints straddle a sign change. It needs at
// least two points.
func Scan(f Func, lo, hi Real, n int, opts ...Option) (Interval, bool) {
	cfg := newSettings(opts)
	cfg.trace.reset()
	if n < 2 || math.IsNaN(lo) || math.IsNaN(hi) {
		return NoInterval(), false
	}
	f = cfg.counted(f)

	xs := floats.Span(make([]float64, n), lo, hi)
	prev := f(xs[0])
	for i := 1; i < n; i++ {
		cfg.iteration()
		y := f(xs[i])
		if prev*y <= 0 {
			iv := Between(xs[i-1], xs[i])
			cfg.reporter.Info("bracket interval found", map[string]interface{}{
				"low":  iv.A,
				"high": iv.B,
			})
			return iv, true
		}
		prev = y
	}
	return NoInterval(), false
}
