package config

import (
	"context"
	"io/fs"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads every manifest file in fsys, translates it into the
	// format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, fsys fs.FS) (*Model, Converter, error)
}

// Converter is the interface for a format-specific data binding and type
// conversion implementation. It is the bridge between invocation arguments
// and the Go types used by node handlers.
type Converter interface {
	// DecodeInputs binds args to the tagged fields of inputStruct, applying
	// manifest defaults and enforcing declared bounds and choices.
	DecodeInputs(ctx context.Context, inputStruct any, args map[string]cty.Value, def *NodeDefinition) error

	// EncodeOutputs converts the tagged fields of a handler's output struct
	// into cty values, one per declared output.
	EncodeOutputs(ctx context.Context, output any, def *NodeDefinition) (map[string]cty.Value, error)
}
