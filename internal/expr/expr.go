// Package expr compiles textual expressions in the variable x, such as
// "0.5 - exp(pi*x)", into functions the solvers can call.
//
// Expressions use govaluate syntax: ** is exponentiation (^ is bitwise xor),
// and the functions sin, cos, tan, exp, log, sqrt, abs and pow are available
// along with the constants pi and e.
package expr

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"

	apperrors "github.com/copyleftdev/zerofun/internal/errors"
	"github.com/copyleftdev/zerofun/internal/rootfind"
)

// Variable is the name of the free variable.
const Variable = "x"

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow takes 2 arguments, got %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("function takes 1 argument, got %d", len(args))
		}
		return fn(toFloat(args[0])), nil
	}
}

// Expression is a compiled expression in x. It is immutable and safe for
// concurrent use.
type Expression struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// Parse compiles src. It rejects empty input and variables other than x and
// the named constants.
func Parse(src string) (*Expression, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidExpression, "expression is empty").
			WithOperation("parse").
			WithComponent("expr")
	}

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(src, functions)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidExpression, "%q: %v", src, err).
			WithOperation("parse").
			WithComponent("expr")
	}

	var unknown []string
	for _, v := range parsed.Vars() {
		if _, ok := constants[v]; !ok && v != Variable {
			unknown = append(unknown, v)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, apperrors.Wrapf(apperrors.ErrInvalidExpression, "%q: unknown variables %s", src, strings.Join(unknown, ", ")).
			WithOperation("parse").
			WithComponent("expr")
	}

	return &Expression{src: src, expr: parsed}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Expression {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the source text.
func (e *Expression) String() string {
	return e.src
}

// Eval evaluates the expression at x.
func (e *Expression) Eval(x float64) (float64, error) {
	params := make(map[string]interface{}, len(constants)+1)
	for k, v := range constants {
		params[k] = v
	}
	params[Variable] = x

	v, err := e.expr.Evaluate(params)
	if err != nil {
		return math.NaN(), err
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case bool:
		return math.NaN(), fmt.Errorf("expression %q is boolean, not numeric", e.src)
	default:
		return math.NaN(), fmt.Errorf("expression %q returned %T", e.src, v)
	}
}

// Func returns the expression as a solver function. Evaluation errors turn
// into NaN, which the solvers treat as a failed evaluation.
func (e *Expression) Func() rootfind.Func {
	return func(x rootfind.Real) rootfind.Real {
		y, err := e.Eval(x)
		if err != nil {
			return math.NaN()
		}
		return y
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return math.NaN()
	}
}
