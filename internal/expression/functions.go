package expression

import (
	"fmt"
	"math"
	"sort"

	"github.com/expr-lang/expr"
)

type unary func(float64) float64
type binary func(float64, float64) float64

var unaryFuncs = map[string]unary{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"exp":   math.Exp,
	"ln":    math.Log,
	"log":   math.Log,
	"log2":  math.Log2,
	"log10": math.Log10,
	"sqrt":  math.Sqrt,
	"cbrt":  math.Cbrt,
	"sign": func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return v
	},
}

var binaryFuncs = map[string]binary{
	"atan2": math.Atan2,
	"pow":   math.Pow,
	"hypot": math.Hypot,
	"fmod":  math.Mod,
}

// binaryTypes covers every mix of integer and float operands, because an
// operator overload only matches exact operand types.
var binaryTypes = []any{
	new(func(float64, float64) float64),
	new(func(float64, int) float64),
	new(func(int, float64) float64),
	new(func(int, int) float64),
}

// FunctionNames lists the functions available to expressions in addition
// to the engine's builtins.
func FunctionNames() []string {
	names := make([]string, 0, len(unaryFuncs)+len(binaryFuncs))
	for name := range unaryFuncs {
		names = append(names, name)
	}
	for name := range binaryFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func functions() []expr.Option {
	opts := make([]expr.Option, 0, len(unaryFuncs)+len(binaryFuncs)+1)
	for name, f := range unaryFuncs {
		f := f
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			a, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			return f(a), nil
		}, new(func(float64) float64)))
	}
	for name, f := range binaryFuncs {
		f := f
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			a, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			b, err := toFloat(params[1])
			if err != nil {
				return nil, err
			}
			return f(a, b), nil
		}, binaryTypes...))
	}
	// % on floats follows C fmod: the result has the sign of the dividend.
	opts = append(opts, expr.Operator("%", "fmod"))
	return opts
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
