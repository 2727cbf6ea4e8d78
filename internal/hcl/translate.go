// This file contains the logic for translating HCL schema structs into the
// format-agnostic manifest model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/framegridgo/internal/config"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. gohcl populates omitted optional expression fields with a
// zero-width placeholder, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}

// translateNodeDefinition converts the HCL node schema into the agnostic model.
func translateNodeDefinition(ctx context.Context, s *schema.NodeDefinition) (*config.NodeDefinition, error) {
	if s.Entry == "" {
		return nil, fmt.Errorf("node %q: entry must not be empty", s.Key)
	}
	d := &config.NodeDefinition{
		Key:         s.Key,
		DisplayName: s.DisplayName,
		Category:    s.Category,
		Description: s.Description,
		Entry:       s.Entry,
		Inputs:      make(map[string]*config.InputDefinition, len(s.Inputs)),
	}
	if d.DisplayName == "" {
		d.DisplayName = s.Key
	}

	for _, in := range s.Inputs {
		if _, dup := d.Inputs[in.Name]; dup {
			return nil, fmt.Errorf("node %q: input %q declared twice", s.Key, in.Name)
		}
		translated, err := translateInputDefinition(ctx, in, s.Key)
		if err != nil {
			return nil, err
		}
		d.Inputs[in.Name] = translated
		d.InputOrder = append(d.InputOrder, in.Name)
	}

	for _, out := range s.Outputs {
		if d.Output(out.Name) != nil {
			return nil, fmt.Errorf("node %q: output %q declared twice", s.Key, out.Name)
		}
		parsedType, isInt, err := typeExprToCtyType(ctx, out.Type)
		if err != nil {
			return nil, fmt.Errorf("node %q, output %q: %w", s.Key, out.Name, err)
		}
		if isInt {
			parsedType = cty.Number
		}
		d.Outputs = append(d.Outputs, &config.OutputDefinition{
			Name:        out.Name,
			Type:        parsedType,
			Description: out.Description,
		})
	}
	return d, nil
}

// translateInputDefinition processes a single HCL input block: type parsing,
// default evaluation and validation of the declared constraints.
func translateInputDefinition(ctx context.Context, in *schema.InputDefinition, owner string) (*config.InputDefinition, error) {
	parsedType, isInt, err := typeExprToCtyType(ctx, in.Type)
	if err != nil {
		return nil, fmt.Errorf("node %q, input %q: %w", owner, in.Name, err)
	}

	def := &config.InputDefinition{
		Name:        in.Name,
		Type:        parsedType,
		Description: in.Description,
		Optional:    in.Optional,
		IsInt:       isInt,
		Min:         in.Min,
		Max:         in.Max,
		Step:        in.Step,
		Choices:     in.Choices,
		Multiline:   in.Multiline,
	}

	numeric := parsedType.Equals(cty.Number)
	if (in.Min != nil || in.Max != nil || in.Step != nil) && !numeric {
		return nil, fmt.Errorf("node %q, input %q: min, max and step require a number or int type", owner, in.Name)
	}
	if in.Min != nil && in.Max != nil && *in.Min > *in.Max {
		return nil, fmt.Errorf("node %q, input %q: min %g is greater than max %g", owner, in.Name, *in.Min, *in.Max)
	}
	if len(in.Choices) > 0 && !parsedType.Equals(cty.String) {
		return nil, fmt.Errorf("node %q, input %q: choices require a string type", owner, in.Name)
	}

	if isExprDefined(ctx, in.Default, "default") {
		val, diags := in.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value for input %q in node %q: %w", in.Name, owner, diags)
		}
		if !val.IsNull() {
			if !parsedType.Equals(cty.DynamicPseudoType) {
				val, err = convert.Convert(val, parsedType)
				if err != nil {
					return nil, fmt.Errorf("node %q, input %q: default does not match type %s: %w", owner, in.Name, def.TypeName(), err)
				}
			}
			if err := checkConstraints(def, val); err != nil {
				return nil, fmt.Errorf("node %q: default %w", owner, err)
			}
			def.Default = &val
			def.Optional = true
		}
	}

	return def, nil
}

// checkConstraints enforces the integer, range and choice constraints of an
// input against a value already converted to its declared type.
func checkConstraints(def *config.InputDefinition, val cty.Value) error {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}
	if def.Type.Equals(cty.Number) {
		f, _ := val.AsBigFloat().Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("input %q: expected a finite number, got %v", def.Name, f)
		}
		if def.IsInt && f != math.Trunc(f) {
			return fmt.Errorf("input %q: expected a whole number, got %g", def.Name, f)
		}
		if def.Min != nil && f < *def.Min {
			return fmt.Errorf("input %q: expected a value %s, got %g", def.Name, def.Bounds(), f)
		}
		if def.Max != nil && f > *def.Max {
			return fmt.Errorf("input %q: expected a value %s, got %g", def.Name, def.Bounds(), f)
		}
	}
	if len(def.Choices) > 0 && def.Type.Equals(cty.String) {
		if s := val.AsString(); !slices.Contains(def.Choices, s) {
			return fmt.Errorf("input %q: expected one of %q, got %q", def.Name, def.Choices, s)
		}
	}
	return nil
}
