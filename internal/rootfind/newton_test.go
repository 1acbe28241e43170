package rootfind

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewtonExpPi(t *testing.T) {
	var tr Trace
	root := NewNewton(expPi, expPiDeriv, 0, 1e-4, 1e-10, 150, Quiet(), WithTrace(&tr)).Solve()

	require.False(t, IsFailure(root))
	assertNear(t, root, -0.2206, 1e-4)
	assertNear(t, root, expPiRoot, 1e-4)
	assert.LessOrEqual(t, tr.Iterations, 6)
}

func TestNewtonQuadraticConvergence(t *testing.T) {
	f, xs := probe(expPi)
	_, err := NewNewton(f, expPiDeriv, -0.2, 0, 1e-15, 50, Quiet()).Root()
	require.NoError(t, err)

	pts := *xs
	require.GreaterOrEqual(t, len(pts), 4)
	errs := make([]float64, 4)
	for i := range errs {
		errs[i] = math.Abs(pts[i] - expPiRoot)
	}
	for i := 1; i < len(errs); i++ {
		assert.Less(t, errs[i], errs[i-1], "error must shrink at step %d", i)
	}
	for i := 1; i < 3; i++ {
		assert.LessOrEqual(t, errs[i], 3*errs[i-1]*errs[i-1], "error must roughly square at step %d", i)
	}
}

func TestNewtonIterationCap(t *testing.T) {
	// Newton cycles between 0 and 1 on x^3 - 2x + 2.
	cycle := func(x Real) Real { return x*x*x - 2*x + 2 }
	dcycle := func(x Real) Real { return 3*x*x - 2 }
	rec := &recorder{}
	s := NewNewton(cycle, dcycle, 0, 1e-8, 1e-10, 40, WithReporter(rec))

	_, err := s.Root()
	assert.True(t, errors.Is(err, ErrMaxIterations))
	assert.True(t, IsFailure(s.Solve()))
	require.Len(t, rec.byLevel("warn"), 1)
}

func TestNewtonZeroDerivative(t *testing.T) {
	// f'(0) = 0 throws the iterate to infinity; the NaNs that follow run the
	// loop into its cap.
	parabola := func(x Real) Real { return x*x - 1 }
	_, err := NewNewton(parabola, func(x Real) Real { return 2 * x }, 0, 1e-8, 0, 10, Quiet()).Root()
	assert.True(t, errors.Is(err, ErrMaxIterations))
}

func TestQuasiNewtonExpPi(t *testing.T) {
	root := NewQuasiNewton(expPi, 0, 1e-3, 1e-4, 1e-10, 150, Quiet()).Solve()
	require.False(t, IsFailure(root))
	assertNear(t, root, expPiRoot, 1e-4)
}

func TestQuasiNewtonMatchesNewton(t *testing.T) {
	newton, err := NewNewton(expPi, expPiDeriv, 0, 0, 1e-14, 100, Quiet()).Root()
	require.NoError(t, err)

	for _, h := range []Real{1e-1, 1e-2, 1e-3, 1e-4} {
		quasi, err := NewQuasiNewton(expPi, 0, h, 0, 1e-14, 100, Quiet()).Root()
		require.NoError(t, err, "h=%g", h)
		assert.LessOrEqual(t, math.Abs(quasi-newton), h*h+1e-12, "h=%g", h)
	}
}

func TestQuasiNewtonCountsDifferenceEvaluations(t *testing.T) {
	var tr Trace
	s := NewQuasiNewton(expPi, 0, 1e-3, 1e-4, 1e-10, 150, Quiet(), WithTrace(&tr))
	// The difference quotient is built per solve over the counted function.
	assert.Nil(t, s.df)
	_, err := s.Root()
	require.NoError(t, err)
	// One residual and two difference points per step, plus the start.
	assert.Equal(t, 1+3*tr.Iterations, tr.Evaluations)
}

func TestCentralDifference(t *testing.T) {
	x := 0.3
	want := expPiDeriv(x)
	prev := math.Inf(1)
	for _, h := range []Real{1e-1, 1e-2, 1e-3} {
		got := CentralDifference(expPi, h)(x)
		diff := math.Abs(got - want)
		// Truncation error is h^2 |f'''| / 6.
		assert.LessOrEqual(t, diff, h*h*math.Pow(math.Pi, 3)*math.Exp(math.Pi*(x+h))/6+1e-9, "h=%g", h)
		assert.Less(t, diff, prev, "h=%g", h)
		prev = diff
	}

	assertNear(t, CentralDifference(func(x Real) Real { return x * x }, 0.5)(3), 6, 1e-12)
}

func TestQuasiNewtonMethod(t *testing.T) {
	var s Solver = NewQuasiNewton(expPi, 0, 1e-3, 1e-4, 1e-10, 150, Quiet())
	assert.Equal(t, MethodQuasiNewton, s.Method())
	assert.Equal(t, MethodNewton, NewNewton(expPi, expPiDeriv, 0, 1e-4, 1e-10, 150).Method())
}
