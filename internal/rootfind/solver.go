package rootfind

// Method names a root-finding algorithm.
type Method string

// Supported methods.
const (
	// MethodRegulaFalsi selects the method of false position.
	MethodRegulaFalsi Method = "RegulaFalsi"
	// MethodBisection selects interval halving.
	MethodBisection Method = "Bisection"
	// MethodSecant selects secant steps against a fixed second point.
	MethodSecant Method = "Secant"
	// MethodBrent selects Brent's bracketing method.
	MethodBrent Method = "Brent"
	// MethodNewton selects Newton's method with an analytic derivative.
	MethodNewton Method = "Newton"
	// MethodQuasiNewton selects Newton's method with a centred difference.
	MethodQuasiNewton Method = "QuasiNewton"
)

// Solver is the contract shared by every algorithm. A solver is configured
// once at construction; Root and Solve recompute the same result from the
// same inputs on every call.
type Solver interface {
	// Solve returns the approximate zero, or NaN after reporting why no
	// zero could be found.
	Solve() Real

	// Root returns the approximate zero or an error wrapping one of the
	// package failure kinds.
	Root() (Real, error)

	// Method names the algorithm.
	Method() Method
}

var (
	_ Solver = (*RegulaFalsi)(nil)
	_ Solver = (*Bisection)(nil)
	_ Solver = (*Secant)(nil)
	_ Solver = (*Brent)(nil)
	_ Solver = (*Newton)(nil)
	_ Solver = (*QuasiNewton)(nil)
)
