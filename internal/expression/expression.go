// Package expression compiles user supplied formulas in the single
// variable x and evaluates them.
//
// Compilation and evaluation are delegated to expr-lang/expr. The value of
// x is passed to every Eval call, so a compiled Expression carries no
// mutable state and may be evaluated from several goroutines at once.
package expression

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var (
	// ErrInvalidInput is returned for text that is rejected before
	// compilation is attempted.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCompile is returned when the engine cannot compile the text.
	ErrCompile = errors.New("invalid function")
)

// Env is the evaluation environment seen by compiled programs.
type Env struct {
	X  float64 `expr:"x"`
	Pi float64 `expr:"pi"`
	E  float64 `expr:"e"`
}

var baseEnv = Env{Pi: math.Pi, E: math.E}

// implicitProduct matches a number directly followed by a name or an
// opening parenthesis, as in 2x or 3(x+1).
var implicitProduct = regexp.MustCompile(`(^|[^A-Za-z0-9_.])[0-9.]+[A-Za-z_(]`)

const implicitProductHint = " (multiplication must be explicit: write 2*x, not 2x)"

// Expression is a compiled function of x.
type Expression struct {
	source  string
	program *vm.Program
}

// Validate rejects empty text and any byte outside 32..127.
func Validate(source string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("%w: empty function", ErrInvalidInput)
	}
	for i := 0; i < len(source); i++ {
		if c := source[i]; c < 32 || c > 127 {
			return fmt.Errorf("%w: non-ASCII character at offset %d, re-enter the function using ASCII only", ErrInvalidInput, i)
		}
	}
	return nil
}

// Compile validates and compiles source.
func Compile(source string) (*Expression, error) {
	if err := Validate(source); err != nil {
		return nil, err
	}
	opts := append([]expr.Option{
		expr.Env(Env{}),
		expr.AsFloat64(),
	}, functions()...)
	program, err := expr.Compile(source, opts...)
	if err != nil {
		msg := firstLine(err.Error())
		if implicitProduct.MatchString(source) {
			msg += implicitProductHint
		}
		return nil, fmt.Errorf("%w: %s", ErrCompile, msg)
	}
	return &Expression{source: source, program: program}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string) *Expression {
	e, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the text the expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

func (e *Expression) String() string {
	return e.source
}

// Eval evaluates the expression at x. Run time failures yield NaN, the same as any other point where the
// function is undefined.
func (e *Expression) Eval(x float64) float64 {
	env := baseEnv
	env.X = x
	out, err := expr.Run(e.program, env)
	if err != nil {
		return math.NaN()
	}
	switch y := out.(type) {
	case float64:
		return y
	case int:
		return float64(y)
	default:
		return math.NaN()
	}
}

// Defined reports whether y is a drawable value.
func Defined(y float64) bool {
	return !math.IsNaN(y) && !math.IsInf(y, 0)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
