package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/copyleftdev/zerofun/internal/errors"
	"github.com/copyleftdev/zerofun/internal/rootfind"
)

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		x    float64
		want float64
	}{
		{"0.5 - exp(pi*x)", 0, -0.5},
		{"0.5 - exp(pi*x)", math.Log(0.5) / math.Pi, 0},
		{"-pi*exp(pi*x)", 1, -math.Pi * math.Exp(math.Pi)},
		{"x**2 - 2", 3, 7},
		{"pow(x, 3) - 2*x - 5", 2, -1},
		{"sqrt(abs(x)) + log(e)", -4, 3},
		{"sin(x)**2 + cos(x)**2", 0.7, 1},
		{"tan(x)", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Parse(tt.src)
			require.NoError(t, err)
			got, err := e.Eval(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.Equal(t, tt.src, e.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"", "   ", "(x + 1", "y - 1", "exp(x) + a*b", "x +* 3"} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidExpression), "got %v", err)
		})
	}
}

func TestFuncTurnsErrorsIntoNaN(t *testing.T) {
	f := MustParse("x > 1").Func()
	assert.True(t, math.IsNaN(f(2)))

	f = MustParse("pow(x)").Func()
	assert.True(t, math.IsNaN(f(2)))
}

func TestFuncDrivesSolver(t *testing.T) {
	f := MustParse("0.5 - exp(pi*x)").Func()
	df := MustParse("-pi*exp(pi*x)").Func()

	root := rootfind.NewNewton(f, df, 0, 1e-4, 1e-10, 150, rootfind.Quiet()).Solve()
	require.False(t, rootfind.IsFailure(root))
	assert.InDelta(t, -0.2206, root, 1e-4)
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("") })
}
