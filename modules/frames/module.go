package frames

import (
	"reflect"

	"github.com/vk/framegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps is empty because the frame nodes are stateless.
type Deps struct{}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	newDeps := func(*registry.Env) any { return new(Deps) }
	r.RegisterNode("OnRunRangeInsert", &registry.RegisteredNode{
		NewInput:  func() any { return new(InsertInput) },
		InputType: reflect.TypeOf(InsertInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunRangeInsert,
	})
	r.RegisterNode("OnRunRangeSwap", &registry.RegisteredNode{
		NewInput:  func() any { return new(SwapInput) },
		InputType: reflect.TypeOf(SwapInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunRangeSwap,
	})
	r.RegisterNode("OnRunRangeSteal", &registry.RegisteredNode{
		NewInput:  func() any { return new(StealInput) },
		InputType: reflect.TypeOf(StealInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunRangeSteal,
	})
}
