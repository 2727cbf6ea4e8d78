// Package optics implements lens simulation nodes.
package optics

import (
	"reflect"

	"github.com/vk/framegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps is empty because the optics nodes are stateless.
type Deps struct{}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	newDeps := func(*registry.Env) any { return new(Deps) }
	r.RegisterNode("OnRunLensFlare", &registry.RegisteredNode{
		NewInput:  func() any { return new(FlareInput) },
		InputType: reflect.TypeOf(FlareInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunLensFlare,
	})
	r.RegisterNode("OnRunVignette", &registry.RegisteredNode{
		NewInput:  func() any { return new(VignetteInput) },
		InputType: reflect.TypeOf(VignetteInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunVignette,
	})
	r.RegisterNode("OnRunChromaticAberration", &registry.RegisteredNode{
		NewInput:  func() any { return new(AberrationInput) },
		InputType: reflect.TypeOf(AberrationInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunChromaticAberration,
	})
}
