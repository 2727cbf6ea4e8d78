// Package masks implements nodes that produce a mask alongside their image.
package masks

import (
	"reflect"

	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/internal/tensor"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps is empty because the mask nodes are stateless.
type Deps struct{}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	newDeps := func(*registry.Env) any { return new(Deps) }
	r.RegisterNode("OnRunSeamlessTile", &registry.RegisteredNode{
		NewInput:  func() any { return new(TileInput) },
		InputType: reflect.TypeOf(TileInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunSeamlessTile,
	})
	r.RegisterNode("OnRunRingMask", &registry.RegisteredNode{
		NewInput:  func() any { return new(RingInput) },
		InputType: reflect.TypeOf(RingInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunRingMask,
	})
}

// perFrame returns n independent copies of m.
func perFrame(m *tensor.Mask, n int) *tensor.MaskBatch {
	out := &tensor.MaskBatch{Frames: make([]*tensor.Mask, n)}
	for i := range out.Frames {
		out.Frames[i] = m.Clone()
	}
	return out
}
