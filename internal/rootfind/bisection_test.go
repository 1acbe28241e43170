package rootfind

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBisectionExpPi(t *testing.T) {
	s := NewBisection(expPi, Between(-1, 1), 1e-4, Quiet())
	root := s.Solve()

	require.False(t, IsFailure(root))
	assertNear(t, root, -0.2206, 1e-4)
	assertNear(t, root, expPiRoot, 1e-4)
	assert.Less(t, math.Abs(expPi(root)), 1e-3)
}

func TestBisectionFinalBracketWidth(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		iv   Interval
		tol  Real
	}{
		{"cubic", cubic, Between(2, 3), 1e-6},
		{"reversed endpoints", cubic, Between(3, 2), 1e-6},
		{"sine", math.Sin, Between(3, 4), 1e-9},
		{"exp", expPi, Between(-1, 1), 1e-3},
		{"tangent", func(x Real) Real { return math.Tan(x) - 1 }, Between(0, 1.5), 1e-8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, xs := probe(tt.f)
			root, err := NewBisection(f, tt.iv, tt.tol, Quiet()).Root()
			require.NoError(t, err)
			assert.True(t, tt.iv.Contains(root))

			// The last two midpoints evaluated bound the final bracket.
			pts := *xs
			require.GreaterOrEqual(t, len(pts), 3)
			last := pts[len(pts)-1]
			assert.LessOrEqual(t, math.Abs(root-last), 2*tt.tol)
			assert.LessOrEqual(t, math.Abs(tt.f(root)), math.Abs(tt.f(tt.iv.A))+math.Abs(tt.f(tt.iv.B)))
		})
	}
}

func TestBisectionExactZeros(t *testing.T) {
	identity := func(x Real) Real { return x }

	root, err := NewBisection(identity, Between(-1, 1), 1e-6, Quiet()).Root()
	require.NoError(t, err)
	assert.Equal(t, 0.0, root)

	root, err = NewBisection(identity, Between(0, 1), 1e-6, Quiet()).Root()
	require.NoError(t, err)
	assert.Equal(t, 0.0, root)

	root, err = NewBisection(identity, Between(-2, 0), 1e-6, Quiet()).Root()
	require.NoError(t, err)
	assert.Equal(t, 0.0, root)
}

func TestBisectionZeroTolerance(t *testing.T) {
	third := func(x Real) Real { return x - 1.0/3 }
	root, err := NewBisection(third, Between(0, 1), 0, Quiet()).Root()
	require.NoError(t, err)
	assertNear(t, root, 1.0/3, 1e-15)
}

func TestChordMidpoint(t *testing.T) {
	c, ok := chord{a: 1, b: 2}.midpoint()
	assert.True(t, ok)
	assert.Equal(t, 1.5, c)

	_, ok = chord{a: 1, b: math.Nextafter(1, 2)}.midpoint()
	assert.False(t, ok)
}

func TestChordReplace(t *testing.T) {
	ch := chord{a: 0, b: 1, ya: -1, yb: 1}

	left := ch.replace(0.5, 0.25)
	assert.Equal(t, chord{a: 0, b: 0.5, ya: -1, yb: 0.25}, left)

	right := ch.replace(0.5, -0.25)
	assert.Equal(t, chord{a: 0.5, b: 1, ya: -0.25, yb: 1}, right)
}
