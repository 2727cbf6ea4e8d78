package registry

import (
	"sort"

	"github.com/vk/framegridgo/internal/config"
)

// Module is the interface that all node modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered handlers and definitions for a single
// application instance.
type Registry struct {
	HandlerRegistry    map[string]*RegisteredNode
	DefinitionRegistry map[string]*config.NodeDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		HandlerRegistry:    make(map[string]*RegisteredNode),
		DefinitionRegistry: make(map[string]*config.NodeDefinition),
	}
}

// PopulateDefinitionsFromModel copies the loaded node definitions from the
// config model into the registry.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Nodes {
		r.DefinitionRegistry[key] = val
	}
}

// Catalog returns every node definition ordered by category, then key.
func (r *Registry) Catalog() []*config.NodeDefinition {
	defs := make([]*config.NodeDefinition, 0, len(r.DefinitionRegistry))
	for _, d := range r.DefinitionRegistry {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Category != defs[j].Category {
			return defs[i].Category < defs[j].Category
		}
		return defs[i].Key < defs[j].Key
	})
	return defs
}
