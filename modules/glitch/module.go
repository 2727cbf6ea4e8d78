// Package glitch implements compression-artifact style effects.
package glitch

import (
	"reflect"

	"github.com/vk/framegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps is empty because the glitch nodes are stateless.
type Deps struct{}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	newDeps := func(*registry.Env) any { return new(Deps) }
	r.RegisterNode("OnRunDatamosh", &registry.RegisteredNode{
		NewInput:  func() any { return new(DatamoshInput) },
		InputType: reflect.TypeOf(DatamoshInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunDatamosh,
	})
	r.RegisterNode("OnRunDepthPixelate", &registry.RegisteredNode{
		NewInput:  func() any { return new(PixelateInput) },
		InputType: reflect.TypeOf(PixelateInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunDepthPixelate,
	})
}
