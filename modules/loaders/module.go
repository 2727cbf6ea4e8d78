// Package loaders implements nodes that read frames, text and audio from
// disk. Missing directories and empty listings are errors wrapping the
// assets sentinels; no loader substitutes a placeholder.
package loaders

import (
	"fmt"
	"reflect"

	"github.com/vk/framegridgo/internal/assets"
	"github.com/vk/framegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Deps gives the loaders access to the configured asset library.
type Deps struct {
	Assets *assets.Library
}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	newDeps := func(env *registry.Env) any { return &Deps{Assets: env.Assets} }
	r.RegisterNode("OnRunLoadTextFromDir", &registry.RegisteredNode{
		NewInput:  func() any { return new(TextInput) },
		InputType: reflect.TypeOf(TextInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunLoadTextFromDir,
	})
	r.RegisterNode("OnRunLoadImagesFromDir", &registry.RegisteredNode{
		NewInput:  func() any { return new(ImagesInput) },
		InputType: reflect.TypeOf(ImagesInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunLoadImagesFromDir,
	})
	r.RegisterNode("OnRunLoadFrameSequence", &registry.RegisteredNode{
		NewInput:  func() any { return new(SequenceInput) },
		InputType: reflect.TypeOf(SequenceInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunLoadFrameSequence,
	})
	r.RegisterNode("OnRunPickBorder", &registry.RegisteredNode{
		NewInput:  func() any { return new(BorderInput) },
		InputType: reflect.TypeOf(BorderInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunPickBorder,
	})
	r.RegisterNode("OnRunPickPose", &registry.RegisteredNode{
		NewInput:  func() any { return new(PoseInput) },
		InputType: reflect.TypeOf(PoseInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunPickPose,
	})
	r.RegisterNode("OnRunLoadAmbience", &registry.RegisteredNode{
		NewInput:  func() any { return new(AmbienceInput) },
		InputType: reflect.TypeOf(AmbienceInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunLoadAmbience,
	})
	r.RegisterNode("OnRunLoadPromptFromAssets", &registry.RegisteredNode{
		NewInput:  func() any { return new(PromptInput) },
		InputType: reflect.TypeOf(PromptInput{}),
		NewDeps:   newDeps,
		Fn:        OnRunLoadPromptFromAssets,
	})
}

// pick lists dir and selects one entry.
func pick(dir, pattern, mode string, index int, seed int64) (*assets.Listing, int, error) {
	m, err := assets.ParseMode(mode)
	if err != nil {
		return nil, 0, err
	}
	listing, err := assets.List(dir, pattern)
	if err != nil {
		return nil, 0, err
	}
	i, err := listing.Select(m, index, seed)
	if err != nil {
		return nil, 0, err
	}
	return listing, i, nil
}

// pickAsset is pick for a kind of the asset library.
func pickAsset(lib *assets.Library, kind assets.Kind, pattern, mode string, index int, seed int64) (*assets.Listing, int, error) {
	listing, i, err := pick(lib.Dir(kind), pattern, mode, index, seed)
	if err != nil {
		return nil, 0, fmt.Errorf("%s assets: %w", kind, err)
	}
	return listing, i, nil
}
