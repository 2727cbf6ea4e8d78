// Package schema holds the gohcl decode targets for node manifest files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// InputDefinition defines a single input of a node.
type InputDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Min         *float64       `hcl:"min,optional"`
	Max         *float64       `hcl:"max,optional"`
	Step        *float64       `hcl:"step,optional"`
	Choices     []string       `hcl:"choices,optional"`
	Multiline   bool           `hcl:"multiline,optional"`
	Optional    bool           `hcl:"optional,optional"`
}

// OutputDefinition defines a single output value produced by a node.
type OutputDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

// NodeDefinition represents the HCL manifest of one node.
type NodeDefinition struct {
	Key         string              `hcl:"key,label"`
	DisplayName string              `hcl:"display_name,optional"`
	Category    string              `hcl:"category"`
	Description string              `hcl:"description,optional"`
	Entry       string              `hcl:"entry"`
	Inputs      []*InputDefinition  `hcl:"input,block"`
	Outputs     []*OutputDefinition `hcl:"output,block"`
}

// DefinitionConfig represents the top-level structure of a manifest file.
type DefinitionConfig struct {
	Nodes []*NodeDefinition `hcl:"node,block"`
	Body  hcl.Body          `hcl:",remain"`
}
