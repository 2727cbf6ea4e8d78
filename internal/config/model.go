package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of every loaded node
// manifest, keyed by node key.
type Model struct {
	Nodes map[string]*NodeDefinition
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Nodes: make(map[string]*NodeDefinition)}
}

// Merge copies the nodes of other into m. Nodes in other replace nodes with
// the same key.
func (m *Model) Merge(other *Model) {
	for key, def := range other.Nodes {
		m.Nodes[key] = def
	}
}

// NodeDefinition is the format-agnostic representation of a node manifest.
type NodeDefinition struct {
	Key         string
	DisplayName string
	Category    string
	Description string
	Entry       string
	// Source is the manifest file the node was read from.
	Source string

	Inputs     map[string]*InputDefinition
	InputOrder []string
	Outputs    []*OutputDefinition
}

// Output returns the output named name, or nil.
func (d *NodeDefinition) Output(name string) *OutputDefinition {
	for _, o := range d.Outputs {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// InputDefinition defines a single typed input of a node.
type InputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool

	// IsInt marks a number input that only accepts whole values.
	IsInt bool
	Min   *float64
	Max   *float64
	Step  *float64
	// Choices restricts a string input to an enumeration.
	Choices   []string
	Multiline bool
}

// TypeName returns the manifest spelling of the input type.
func (d *InputDefinition) TypeName() string {
	if d.IsInt {
		return "int"
	}
	return TypeName(d.Type)
}

// Bounds renders the numeric range of the input, or "" when unbounded.
func (d *InputDefinition) Bounds() string {
	switch {
	case d.Min != nil && d.Max != nil:
		return fmt.Sprintf("[%g, %g]", *d.Min, *d.Max)
	case d.Min != nil:
		return fmt.Sprintf(">= %g", *d.Min)
	case d.Max != nil:
		return fmt.Sprintf("<= %g", *d.Max)
	}
	return ""
}

// OutputDefinition defines a single output value produced by a node.
type OutputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
}

// TypeName returns the manifest spelling of a type. Capsule types are named
// after their capsule, DynamicPseudoType is "any".
func TypeName(ty cty.Type) string {
	switch {
	case ty.Equals(cty.DynamicPseudoType):
		return "any"
	case ty.IsCapsuleType():
		return ty.FriendlyName()
	case ty.IsListType():
		return "list(" + TypeName(ty.ElementType()) + ")"
	case ty.IsMapType():
		return "map(" + TypeName(ty.ElementType()) + ")"
	}
	return ty.FriendlyName()
}
