// Package film implements photographic texture nodes: grain, brightness
// flicker and fades.
package film

import (
	"reflect"

	"github.com/vk/framegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps is empty because the film nodes are stateless.
type Deps struct{}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	newDeps := func(*registry.Env) any { return new(Deps) }
	r.RegisterNode("OnRunFilmGrain", &registry.RegisteredNode{
		NewInput:  func() any { return new(GrainInput) },
		InputType: reflect.TypeOf(GrainInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunFilmGrain,
	})
	r.RegisterNode("OnRunFlicker", &registry.RegisteredNode{
		NewInput:  func() any { return new(FlickerInput) },
		InputType: reflect.TypeOf(FlickerInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunFlicker,
	})
	r.RegisterNode("OnRunFade", &registry.RegisteredNode{
		NewInput:  func() any { return new(FadeInput) },
		InputType: reflect.TypeOf(FadeInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunFade,
	})
}
