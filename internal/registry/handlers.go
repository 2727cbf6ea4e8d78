package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/framegridgo/internal/assets"
	"github.com/vk/framegridgo/internal/stopwatch"
)

// Env carries the process-wide services a node's deps may be built from.
type Env struct {
	Assets *assets.Library
	Clock  stopwatch.Clock
}

// RegisteredNode holds the compiled Go parts of a node.
//
// Fn must have the signature func(context.Context, *Deps, *Input) (*Output, error).
// NewDeps is called once per node key, so the returned value is the
// node's per-instance state.
type RegisteredNode struct {
	NewInput  func() any
	InputType reflect.Type
	NewDeps   func(env *Env) any
	Fn        any
}

// RegisterNode registers a Go handler under its manifest entry name.
func (r *Registry) RegisterNode(entry string, handler *RegisteredNode) {
	if _, exists := r.HandlerRegistry[entry]; exists {
		panic(fmt.Sprintf("node handler with name '%s' already registered", entry))
	}
	slog.Debug("Registering node handler.", "entry", entry)
	r.HandlerRegistry[entry] = handler
}

// OutputType returns the struct type the handler's Fn returns.
func (h *RegisteredNode) OutputType() (reflect.Type, error) {
	fnType := reflect.TypeOf(h.Fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("handler Fn is %T, not a function", h.Fn)
	}
	if fnType.NumIn() != 3 || fnType.NumOut() != 2 {
		return nil, fmt.Errorf("handler Fn must take (ctx, deps, input) and return (output, error), got %s", fnType)
	}
	if !fnType.Out(1).Implements(reflect.TypeOf((*error)(nil)).Elem()) {
		return nil, fmt.Errorf("handler Fn's second result must be an error, got %s", fnType.Out(1))
	}
	out := fnType.Out(0)
	if out.Kind() == reflect.Ptr {
		out = out.Elem()
	}
	if out.Kind() != reflect.Struct {
		return nil, fmt.Errorf("handler Fn must return a struct or struct pointer, got %s", fnType.Out(0))
	}
	return out, nil
}
