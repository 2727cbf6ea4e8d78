package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ParseArg evaluates a literal HCL expression such as `3`, `"text"`,
// `true` or `[1, 2]` without any variables or functions in scope.
func ParseArg(src string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "arg", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid argument expression %q: %w", src, diags)
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("cannot evaluate argument expression %q: %w", src, diags)
	}
	return val, nil
}
