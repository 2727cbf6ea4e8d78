package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/framegridgo/internal/config"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var ctyValueType = reflect.TypeOf(cty.Value{})

// ValidateRegistry performs a strict parity check between manifests and Go
// code. Every manifest entry must have a handler, and the handler's input
// and output structs must bind exactly the declared names with compatible
// types.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	used := make(map[string]bool)
	for _, key := range sortedKeys(r.DefinitionRegistry) {
		def := r.DefinitionRegistry[key]
		handler, ok := r.HandlerRegistry[def.Entry]
		if !ok {
			errs = append(errs, fmt.Sprintf("node '%s': entry '%s' has no registered handler", key, def.Entry))
			continue
		}
		used[def.Entry] = true

		if handler.InputType == nil {
			if len(def.Inputs) > 0 {
				errs = append(errs, fmt.Sprintf("node '%s': manifest declares inputs, but Go handler has no input struct", key))
			}
		} else {
			goInputs := config.TaggedFields(handler.InputType)
			for name := range goInputs {
				if _, ok := def.Inputs[name]; !ok {
					errs = append(errs, fmt.Sprintf("node '%s': Go struct has field for input '%s' which is not declared in manifest", key, name))
				}
			}
			for _, name := range def.InputOrder {
				field, ok := goInputs[name]
				if !ok {
					errs = append(errs, fmt.Sprintf("node '%s': manifest declares input '%s' which is not found in Go struct", key, name))
					continue
				}
				if msg := checkFieldType(def.Inputs[name].Type, def.Inputs[name].IsInt, field); msg != "" {
					errs = append(errs, fmt.Sprintf("node '%s', input '%s': %s", key, name, msg))
				}
				if def.Inputs[name].Type.Equals(cty.DynamicPseudoType) && field.Type != ctyValueType {
					logger.Warn("Manifest input has 'type = any', which disables static type checking.", "node", key, "input", name)
				}
			}
		}

		outType, err := handler.OutputType()
		if err != nil {
			errs = append(errs, fmt.Sprintf("node '%s': %v", key, err))
			continue
		}
		goOutputs := config.TaggedFields(outType)
		for name := range goOutputs {
			if def.Output(name) == nil {
				errs = append(errs, fmt.Sprintf("node '%s': Go struct has field for output '%s' which is not declared in manifest", key, name))
			}
		}
		for _, o := range def.Outputs {
			field, ok := goOutputs[o.Name]
			if !ok {
				errs = append(errs, fmt.Sprintf("node '%s': manifest declares output '%s' which is not found in Go struct", key, o.Name))
				continue
			}
			if msg := checkFieldType(o.Type, false, field); msg != "" {
				errs = append(errs, fmt.Sprintf("node '%s', output '%s': %s", key, o.Name, msg))
			}
		}
	}

	for entry := range r.HandlerRegistry {
		if !used[entry] {
			logger.Debug("Handler is not referenced by any manifest.", "entry", entry)
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// checkFieldType reports why a Go field cannot carry values of the manifest
// type, or "" when it can.
func checkFieldType(manifestType cty.Type, isInt bool, field reflect.StructField) string {
	switch {
	case field.Type == ctyValueType:
		return ""
	case manifestType.Equals(cty.DynamicPseudoType):
		return ""
	case manifestType.IsCapsuleType():
		want := reflect.PointerTo(manifestType.EncapsulatedType())
		if field.Type != want {
			return fmt.Sprintf("type mismatch. Manifest requires '%s' which needs Go type %s, but field '%s' is %s", manifestType.FriendlyName(), want, field.Name, field.Type)
		}
		return ""
	case isInt:
		switch field.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return ""
		}
		return fmt.Sprintf("type mismatch. Manifest requires 'int' but Go struct field '%s' is %s", field.Name, field.Type)
	}

	goFieldType, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
	if err != nil {
		return fmt.Sprintf("could not imply cty type from Go field type %s: %v", field.Type, err)
	}
	if !manifestType.Equals(goFieldType) {
		return fmt.Sprintf("type mismatch. Manifest requires '%s' but Go struct field '%s' provides compatible type '%s'",
			config.TypeName(manifestType), field.Name, config.TypeName(goFieldType))
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
