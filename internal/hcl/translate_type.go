// This file contains the logic for parsing HCL type expressions (e.g.,
// `string`, `image`, `list(number)`) into their corresponding cty.Type.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/zclconf/go-cty/cty"
)

// primitives maps type keywords to cty types. `int` is a number with an
// integer constraint, reported separately by typeExprToCtyType.
var primitives = map[string]cty.Type{
	"string": cty.String,
	"number": cty.Number,
	"int":    cty.Number,
	"bool":   cty.Bool,
	"any":    cty.DynamicPseudoType,
	"image":  tensor.ImageType,
	"mask":   tensor.MaskType,
	"audio":  tensor.AudioType,
}

// typeExprToCtyType converts an HCL type expression into its cty.Type
// equivalent. The bool result is true for the `int` keyword.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, bool, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return cty.DynamicPseudoType, false, nil
	}

	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, false, fmt.Errorf("type constructors (list, map) require exactly one argument, got %d", len(v.Args))
		}

		elementType, _, err := typeExprToCtyType(ctx, v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, false, err
		}
		if elementType == cty.DynamicPseudoType {
			return cty.DynamicPseudoType, false, fmt.Errorf("collection types cannot contain type 'any'")
		}
		if tensor.IsTensorType(elementType) {
			return cty.DynamicPseudoType, false, fmt.Errorf("collection types cannot contain tensor type %q", elementType.FriendlyName())
		}
		logger.Debug("Parsed collection element type.", "call", v.Name, "type", elementType.FriendlyName())

		switch v.Name {
		case "list":
			return cty.List(elementType), false, nil
		case "map":
			return cty.Map(elementType), false, nil
		default:
			return cty.DynamicPseudoType, false, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, false, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		ty, ok := primitives[rootName]
		if !ok {
			return cty.DynamicPseudoType, false, fmt.Errorf("unknown primitive type %q", rootName)
		}
		return ty, rootName == "int", nil

	default:
		return cty.DynamicPseudoType, false, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
