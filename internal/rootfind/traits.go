// Package rootfind finds zeros of scalar real functions.
//
// Interval methods (RegulaFalsi, Bisection, Secant, Brent) start from an
// Interval that is either supplied directly with Between or discovered with
// Bracket. Newton and QuasiNewton start from a single point.
//
// Every solver offers two entry points: Root returns the approximation and a
// typed error, Solve returns the approximation or NaN and hands the failure
// to the configured Reporter. Use IsFailure, never ==, to test a Solve result.
package rootfind

import "math"

// Real is the scalar type used throughout the package.
type Real = float64

// Func is a real function of one real variable. Solvers only ever call it;
// it must be safe to evaluate any number of times at the same point.
type Func func(x Real) Real

// IsFailure reports whether x is the failure sentinel returned by Solve.
func IsFailure(x Real) bool {
	return math.IsNaN(x)
}

// machineEpsilon is the distance from 1.0 to the next larger float64.
const machineEpsilon = 0x1p-52

func nan() Real {
	return math.NaN()
}
