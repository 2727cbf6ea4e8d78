package expr

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ErrEmpty is returned when compiling a blank expression.
var ErrEmpty = errors.New("expression is empty")

// Program is a compiled expression bound to a fixed variable set.
type Program struct {
	source string
	expr   hclsyntax.Expression
	vars   map[string]struct{}
}

// Compile parses and checks src. vars lists the variable names the
// expression may reference.
func Compile(src string, vars ...string) (*Program, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmpty
	}

	parsed, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %q: %w", src, diags)
	}

	p := &Program{source: src, expr: parsed, vars: make(map[string]struct{}, len(vars))}
	for _, v := range vars {
		p.vars[v] = struct{}{}
	}

	if err := checkSyntax(parsed); err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}
	for _, traversal := range parsed.Variables() {
		name := traversal.RootName()
		if len(traversal) != 1 {
			return nil, fmt.Errorf("expression %q: attribute access on %q is not allowed", src, name)
		}
		if _, ok := p.vars[name]; ok {
			continue
		}
		if _, ok := constants[name]; ok {
			continue
		}
		return nil, fmt.Errorf("expression %q: unknown variable %q (available: %s)", src, name, strings.Join(p.names(), ", "))
	}
	return p, nil
}

// Source returns the expression text.
func (p *Program) Source() string { return p.source }

// Eval evaluates the expression. Variables declared at compile time but
// missing from values evaluate as zero.
func (p *Program) Eval(values map[string]float64) (float64, error) {
	variables := make(map[string]cty.Value, len(constants)+len(p.vars))
	for name, v := range constants {
		variables[name] = v
	}
	for name := range p.vars {
		variables[name] = cty.NumberFloatVal(values[name])
	}

	val, diags := p.expr.Value(&hcl.EvalContext{Variables: variables, Functions: functions})
	if diags.HasErrors() {
		return 0, fmt.Errorf("evaluate %q: %w", p.source, diags)
	}
	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("evaluate %q: result is %s, not a number", p.source, val.Type().FriendlyName())
	}
	f, _ := val.AsBigFloat().Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("evaluate %q: result is not finite", p.source)
	}
	return f, nil
}

func (p *Program) names() []string {
	names := make([]string, 0, len(p.vars)+len(constants))
	for n := range p.vars {
		names = append(names, n)
	}
	for n := range constants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// checkSyntax walks the syntax tree and rejects every node kind outside the
// arithmetic grammar.
func checkSyntax(expr hclsyntax.Expression) error {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		if !e.Val.Type().Equals(cty.Number) && !e.Val.Type().Equals(cty.Bool) {
			return fmt.Errorf("literal of type %s is not allowed", e.Val.Type().FriendlyName())
		}
		return nil
	case *hclsyntax.ScopeTraversalExpr:
		return nil
	case *hclsyntax.FunctionCallExpr:
		if _, ok := functions[e.Name]; !ok {
			return fmt.Errorf("unknown function %q", e.Name)
		}
		if e.ExpandFinal {
			return errors.New("argument expansion is not allowed")
		}
		for _, arg := range e.Args {
			if err := checkSyntax(arg); err != nil {
				return err
			}
		}
		return nil
	case *hclsyntax.BinaryOpExpr:
		if err := checkSyntax(e.LHS); err != nil {
			return err
		}
		return checkSyntax(e.RHS)
	case *hclsyntax.UnaryOpExpr:
		return checkSyntax(e.Val)
	case *hclsyntax.ConditionalExpr:
		for _, part := range []hclsyntax.Expression{e.Condition, e.TrueResult, e.FalseResult} {
			if err := checkSyntax(part); err != nil {
				return err
			}
		}
		return nil
	case *hclsyntax.ParenthesesExpr:
		return checkSyntax(e.Expression)
	default:
		return fmt.Errorf("%T is not allowed", expr)
	}
}
