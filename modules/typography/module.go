// Package typography implements text rendering and text utility nodes.
package typography

import (
	"reflect"
	"time"

	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/internal/stopwatch"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps is empty for the stateless text nodes.
type Deps struct{}

// PathDeps supplies the clock used for date tokens.
type PathDeps struct {
	Now stopwatch.Clock
}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	newDeps := func(*registry.Env) any { return new(Deps) }
	r.RegisterNode("OnRunTextOverlay", &registry.RegisteredNode{
		NewInput:  func() any { return new(OverlayInput) },
		InputType: reflect.TypeOf(OverlayInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunTextOverlay,
	})
	r.RegisterNode("OnRunTextCleanup", &registry.RegisteredNode{
		NewInput:  func() any { return new(CleanupInput) },
		InputType: reflect.TypeOf(CleanupInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunTextCleanup,
	})
	r.RegisterNode("OnRunPathBuilder", &registry.RegisteredNode{
		NewInput:  func() any { return new(PathInput) },
		InputType: reflect.TypeOf(PathInput{}),
		NewDeps: func(env *registry.Env) any {
			now := env.Clock
			if now == nil {
				now = time.Now
			}
			return &PathDeps{Now: now}
		},
		Fn: OnRunPathBuilder,
	})
}
