package rootfind

import (
	"math"
	"sync"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// expPi is 0.5 - exp(pi*x), zero at ln(0.5)/pi.
func expPi(x Real) Real { return 0.5 - math.Exp(math.Pi*x) }

func expPiDeriv(x Real) Real { return -math.Pi * math.Exp(math.Pi*x) }

var expPiRoot = math.Log(0.5) / math.Pi

// cubic is x^3 - 2x - 5, strictly increasing on [2, 3].
func cubic(x Real) Real { return x*x*x - 2*x - 5 }

const cubicRoot = 2.0945514815423265

type entry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// recorder is a Reporter that keeps every entry.
type recorder struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recorder) add(level, msg string, fields []map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var f map[string]interface{}
	if len(fields) > 0 {
		f = fields[0]
	}
	r.entries = append(r.entries, entry{level: level, msg: msg, fields: f})
}

func (r *recorder) Debug(msg string, fields ...map[string]interface{}) { r.add("debug", msg, fields) }
func (r *recorder) Info(msg string, fields ...map[string]interface{})  { r.add("info", msg, fields) }
func (r *recorder) Warn(msg string, fields ...map[string]interface{})  { r.add("warn", msg, fields) }

func (r *recorder) byLevel(level string) []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entry
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

// probe wraps f and remembers every point it was evaluated at.
func probe(f Func) (Func, *[]Real) {
	xs := &[]Real{}
	return func(x Real) Real {
		*xs = append(*xs, x)
		return f(x)
	}, xs
}

// assertNear fails the test when got and want differ by more than tol.
func assertNear(t *testing.T, got, want, tol float64) {
	t.Helper()
	if !scalar.EqualWithinAbs(got, want, tol) {
		t.Fatalf("got %v, want %v (tolerance %v)", got, want, tol)
	}
}
