package expr

import (
	"errors"
	"math"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var errNaN = errors.New("result is not a number")

// numberVal converts a float result, rejecting NaN which cty cannot hold.
func numberVal(f float64) (cty.Value, error) {
	if math.IsNaN(f) {
		return cty.NilVal, errNaN
	}
	return cty.NumberFloatVal(f), nil
}

// unary wraps a float64 math function as a cty function of one number.
func unary(fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			return numberVal(fn(x))
		},
	})
}

// binary wraps a float64 math function of two numbers.
func binary(fn func(float64, float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "a", Type: cty.Number},
			{Name: "b", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			a, _ := args[0].AsBigFloat().Float64()
			b, _ := args[1].AsBigFloat().Float64()
			return numberVal(fn(a, b))
		},
	})
}

var clampFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "x", Type: cty.Number},
		{Name: "lo", Type: cty.Number},
		{Name: "hi", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		x, _ := args[0].AsBigFloat().Float64()
		lo, _ := args[1].AsBigFloat().Float64()
		hi, _ := args[2].AsBigFloat().Float64()
		return cty.NumberFloatVal(math.Min(math.Max(x, lo), hi)), nil
	},
})

// functions is the complete table visible to expressions.
var functions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,
	"sin":    unary(math.Sin),
	"cos":    unary(math.Cos),
	"tan":    unary(math.Tan),
	"asin":   unary(math.Asin),
	"acos":   unary(math.Acos),
	"atan":   unary(math.Atan),
	"sqrt":   unary(math.Sqrt),
	"exp":    unary(math.Exp),
	"ln":     unary(math.Log),
	"round":  unary(math.Round),
	"atan2":  binary(math.Atan2),
	"fmod":   binary(math.Mod),
	"clamp":  clampFunc,
}

var constants = map[string]cty.Value{
	"pi": cty.NumberFloatVal(math.Pi),
	"e":  cty.NumberFloatVal(math.E),
}

// Functions returns the sorted names of the available functions.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
