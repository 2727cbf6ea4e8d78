// Package utility implements small helper nodes: a stopwatch that keeps
// state between invocations and a math expression evaluator.
package utility

import (
	"context"
	"math"
	"reflect"

	"github.com/vk/framegridgo/internal/expr"
	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/internal/stopwatch"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// StopwatchDeps is the state of one Stopwatch node instance.
type StopwatchDeps struct {
	Watch *stopwatch.Watch
}

// StopwatchInput defines the arguments of the Stopwatch node.
type StopwatchInput struct {
	Value  cty.Value `fggo:"value"`
	Action string    `fggo:"action"`
}

// StopwatchOutput holds the forwarded value and the reported time.
type StopwatchOutput struct {
	Value          cty.Value `fggo:"value"`
	ElapsedSeconds float64   `fggo:"elapsed_seconds"`
	Elapsed        string    `fggo:"elapsed"`
}

// OnRunStopwatch applies the action to the instance's watch and forwards
// value untouched.
func OnRunStopwatch(_ context.Context, deps *StopwatchDeps, in *StopwatchInput) (*StopwatchOutput, error) {
	action, err := stopwatch.ParseAction(in.Action)
	if err != nil {
		return nil, err
	}
	elapsed, err := deps.Watch.Do(action)
	if err != nil {
		return nil, err
	}
	value := stopwatch.Pass(in.Value)
	if value.IsNull() {
		value = cty.NullVal(cty.DynamicPseudoType)
	}
	return &StopwatchOutput{
		Value:          value,
		ElapsedSeconds: elapsed.Seconds(),
		Elapsed:        stopwatch.Format(elapsed),
	}, nil
}

// MathDeps is empty because expressions are stateless.
type MathDeps struct{}

// MathInput defines the arguments of the MathExpression node.
type MathInput struct {
	Expression string  `fggo:"expression"`
	T          float64 `fggo:"t"`
	Frame      int     `fggo:"frame"`
	Frames     int     `fggo:"frames"`
	Fallback   float64 `fggo:"fallback"`
}

// MathOutput holds the result and its nearest integer.
type MathOutput struct {
	Value    float64 `fggo:"value"`
	IntValue int     `fggo:"int_value"`
}

// OnRunMathExpression evaluates the expression. Invalid expressions are
// logged and yield fallback rather than failing the node.
func OnRunMathExpression(ctx context.Context, _ *MathDeps, in *MathInput) (*MathOutput, error) {
	fn := expr.CompileOrDefault(ctx, in.Expression, in.Fallback, "t", "frame", "frames")
	v := fn(map[string]float64{
		"t":      in.T,
		"frame":  float64(in.Frame),
		"frames": float64(in.Frames),
	})
	return &MathOutput{Value: v, IntValue: roundInt(v)}, nil
}

// roundInt rounds v to the nearest int, saturating outside the int range.
func roundInt(v float64) int {
	r := math.Round(v)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode("OnRunStopwatch", &registry.RegisteredNode{
		NewInput:  func() any { return new(StopwatchInput) },
		InputType: reflect.TypeOf(StopwatchInput{}),
		NewDeps:   func(env *registry.Env) any { return &StopwatchDeps{Watch: stopwatch.New(env.Clock)} },
		Fn:        OnRunStopwatch,
	})
	r.RegisterNode("OnRunMathExpression", &registry.RegisteredNode{
		NewInput:  func() any { return new(MathInput) },
		InputType: reflect.TypeOf(MathInput{}),
		NewDeps:   func(*registry.Env) any { return new(MathDeps) },
		Fn:        OnRunMathExpression,
	})
}
