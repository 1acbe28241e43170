// Package dispatch selects and constructs solvers from a method name and a
// parameter bag.
package dispatch

import (
	"math"
	"strings"

	apperrors "github.com/copyleftdev/zerofun/internal/errors"
	"github.com/copyleftdev/zerofun/internal/rootfind"
)

// ErrUnknownMethod is returned by ParseMethod and Build for a name outside
// the supported set.
var ErrUnknownMethod = apperrors.ErrUnknownMethod

var methods = []rootfind.Method{
	rootfind.MethodRegulaFalsi,
	rootfind.MethodBisection,
	rootfind.MethodSecant,
	rootfind.MethodBrent,
	rootfind.MethodNewton,
	rootfind.MethodQuasiNewton,
}

// Methods lists the supported methods in a stable order.
func Methods() []rootfind.Method {
	out := make([]rootfind.Method, len(methods))
	copy(out, methods)
	return out
}

// ParseMethod resolves a method name. Matching ignores case and surrounding
// whitespace.
func ParseMethod(name string) (rootfind.Method, error) {
	trimmed := strings.TrimSpace(name)
	for _, m := range methods {
		if strings.EqualFold(trimmed, string(m)) {
			return m, nil
		}
	}
	return "", apperrors.Wrapf(ErrUnknownMethod, "%q", name).
		WithOperation("parse method").
		WithComponent("dispatch")
}

// Bracketing reports whether m needs an interval rather than a starting point.
func Bracketing(m rootfind.Method) bool {
	switch m {
	case rootfind.MethodRegulaFalsi, rootfind.MethodBisection, rootfind.MethodSecant, rootfind.MethodBrent:
		return true
	}
	return false
}

// BracketParams selects the derived-interval construction mode: instead of
// [A, B] the interval comes from an expanding search starting at X1.
type BracketParams struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	X1      float64 `yaml:"x1" json:"x1"`
}

// Params is the named parameter bag of the datafile.
type Params struct {
	A         float64       `yaml:"a" json:"a"`
	B         float64       `yaml:"b" json:"b"`
	Tol       float64       `yaml:"tol" json:"tol"`
	Tola      float64       `yaml:"tola" json:"tola"`
	MaxIt     uint          `yaml:"maxIt" json:"maxIt"`
	HInterval float64       `yaml:"h_interval" json:"h_interval"`
	MaxIter   uint          `yaml:"maxIter" json:"maxIter"`
	X0        float64       `yaml:"x0" json:"x0"`
	H         float64       `yaml:"h" json:"h"`
	Bracket   BracketParams `yaml:"bracket" json:"bracket"`
}

// DefaultParams returns the values used for keys a datafile leaves out.
func DefaultParams() Params {
	return Params{
		A:         -1,
		B:         1,
		Tol:       1e-4,
		Tola:      1e-10,
		MaxIt:     150,
		HInterval: 0.01,
		MaxIter:   200,
		X0:        0,
		H:         1e-3,
	}
}

// Validate rejects tolerances and steps that no solver can use.
func (p Params) Validate() error {
	check := func(name string, v float64, allowNegative bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.Wrapf(apperrors.ErrInvalidParameter, "%s must be finite, got %v", name, v).
				WithOperation("validate").
				WithComponent("dispatch")
		}
		if !allowNegative && v < 0 {
			return apperrors.Wrapf(apperrors.ErrInvalidParameter, "%s must not be negative, got %v", name, v).
				WithOperation("validate").
				WithComponent("dispatch")
		}
		return nil
	}

	for _, c := range []struct {
		name          string
		v             float64
		allowNegative bool
	}{
		{"a", p.A, true},
		{"b", p.B, true},
		{"tol", p.Tol, false},
		{"tola", p.Tola, false},
		{"h_interval", p.HInterval, true},
		{"x0", p.X0, true},
		{"h", p.H, false},
		{"bracket.x1", p.Bracket.X1, true},
	} {
		if err := check(c.name, c.v, c.allowNegative); err != nil {
			return err
		}
	}
	return nil
}

// Interval returns the interval a bracketing method starts from: [A, B], or
// the result of the expanding search when bracket mode is on. A failed search
// yields the NaN interval, which the solver reports as a failure.
func (p Params) Interval(f rootfind.Func, opts ...rootfind.Option) rootfind.Interval {
	if p.Bracket.Enabled {
		return rootfind.Bracket(f, p.Bracket.X1, p.HInterval, p.MaxIter, opts...)
	}
	return rootfind.Between(p.A, p.B)
}

// Build constructs the solver for m. Newton requires df; the other methods
// ignore it.
func Build(m rootfind.Method, f, df rootfind.Func, p Params, opts ...rootfind.Option) (rootfind.Solver, error) {
	if f == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidExpression, "target function is required").
			WithOperation("build").
			WithComponent("dispatch")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch m {
	case rootfind.MethodRegulaFalsi:
		return rootfind.NewRegulaFalsi(f, p.Interval(f, opts...), p.Tol, p.Tola, opts...), nil
	case rootfind.MethodBisection:
		return rootfind.NewBisection(f, p.Interval(f, opts...), p.Tol, opts...), nil
	case rootfind.MethodSecant:
		return rootfind.NewSecant(f, p.Interval(f, opts...), p.Tol, p.Tola, p.MaxIt, opts...), nil
	case rootfind.MethodBrent:
		return rootfind.NewBrent(f, p.Interval(f, opts...), p.Tol, p.MaxIt, opts...), nil
	case rootfind.MethodNewton:
		if df == nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidExpression, "Newton requires a derivative").
				WithOperation("build").
				WithComponent("dispatch")
		}
		return rootfind.NewNewton(f, df, p.X0, p.Tol, p.Tola, p.MaxIt, opts...), nil
	case rootfind.MethodQuasiNewton:
		return rootfind.NewQuasiNewton(f, p.X0, p.H, p.Tol, p.Tola, p.MaxIt, opts...), nil
	}

	return nil, apperrors.Wrapf(ErrUnknownMethod, "%q", string(m)).
		WithOperation("build").
		WithComponent("dispatch")
}
