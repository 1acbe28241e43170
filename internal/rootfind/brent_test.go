package rootfind

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrent(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		iv   Interval
		want Real
	}{
		{"exp", expPi, Between(-1, 1), expPiRoot},
		{"cubic", cubic, Between(2, 3), cubicRoot},
		{"cosine", func(x Real) Real { return math.Cos(x) - x }, Between(0, 1), 0.7390851332151607},
		{"sqrt2", func(x Real) Real { return x*x - 2 }, Between(0, 2), math.Sqrt2},
		{"flat", func(x Real) Real { return math.Pow(x-1, 3) }, Between(0, 3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Trace
			root, err := NewBrent(tt.f, tt.iv, 1e-12, 200, Quiet(), WithTrace(&tr)).Root()
			require.NoError(t, err)
			assert.True(t, tt.iv.Contains(root))
			assertNear(t, root, tt.want, 1e-6)
			assert.LessOrEqual(t, tr.Iterations, 200)
		})
	}
}

func TestBrentBeatsBisection(t *testing.T) {
	var brent, bisect Trace
	_, err := NewBrent(cubic, Between(2, 3), 1e-10, 100, Quiet(), WithTrace(&brent)).Root()
	require.NoError(t, err)
	_, err = NewBisection(cubic, Between(2, 3), 1e-10, Quiet(), WithTrace(&bisect)).Root()
	require.NoError(t, err)

	assert.Less(t, brent.Evaluations, bisect.Evaluations)
}

func TestBrentZeroEndpoint(t *testing.T) {
	identity := func(x Real) Real { return x }

	root, err := NewBrent(identity, Between(0, 1), 1e-8, 10, Quiet()).Root()
	require.NoError(t, err)
	assert.Equal(t, 0.0, root)

	root, err = NewBrent(identity, Between(-1, 0), 1e-8, 10, Quiet()).Root()
	require.NoError(t, err)
	assert.Equal(t, 0.0, root)
}

func TestBrentIterationCap(t *testing.T) {
	_, err := NewBrent(expPi, Between(-1, 1), 1e-14, 2, Quiet()).Root()
	assert.True(t, errors.Is(err, ErrMaxIterations))
}

func TestBrentStateKeepsBestEstimateInB(t *testing.T) {
	st := newBrentState(0, 1, -0.1, 2)
	assert.Equal(t, 0.0, st.b)
	assert.Equal(t, -0.1, st.yb)
	assert.Equal(t, 1.0, st.a)
	assert.True(t, st.bisected)

	next := st.advance(0.5, 0.5, true)
	assert.Equal(t, 0.0, next.b)
	assert.Equal(t, 0.5, next.a)
	assert.Equal(t, 0.0, next.c)
	assert.Equal(t, 1.0, next.d)
	assert.LessOrEqual(t, math.Abs(next.yb), math.Abs(next.ya))
}

func TestBrentTrial(t *testing.T) {
	// The secant step through (0,-1) and (1,1) lands on the midpoint, which
	// does not halve |b-c| after a bisection step.
	s, bisected := newBrentState(0, 1, -1, 1).trial(1e-12)
	assert.True(t, bisected)
	assert.Equal(t, 0.5, s)

	// A bracket narrower than tol always bisects.
	s, bisected = newBrentState(0, 1, -3, 1).trial(10)
	assert.True(t, bisected)
	assert.Equal(t, 0.5, s)

	// The secant step through (0,-3) and (1,1) is accepted.
	s, bisected = newBrentState(0, 1, -3, 1).trial(1e-12)
	assert.False(t, bisected)
	assert.Equal(t, 0.75, s)
}
