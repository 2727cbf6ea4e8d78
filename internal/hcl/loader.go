package hcl

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/framegridgo/internal/config"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/fsutil"
	"github.com/vk/framegridgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file in fsys and translates the node blocks into
// the format-agnostic model. A key declared twice within fsys is an error.
func (l *Loader) Load(ctx context.Context, fsys fs.FS) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(fsys, ".", ".hcl")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find manifest files: %w", err)
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read manifest %s: %w", file, err)
		}
		hclFile, diags := parser.ParseHCL(src, file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.DefinitionConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, node := range root.Nodes {
			def, err := translateNodeDefinition(ctx, node)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
			if prev, exists := model.Nodes[def.Key]; exists {
				return nil, nil, fmt.Errorf("node %q declared in both %s and %s", def.Key, prev.Source, file)
			}
			def.Source = file
			model.Nodes[def.Key] = def
		}
	}

	logger.Debug("Manifest loading complete.", "nodes", len(model.Nodes))
	return model, NewConverter(), nil
}
