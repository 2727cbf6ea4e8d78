package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/framegridgo/internal/config"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var ctyValueType = reflect.TypeOf(cty.Value{})

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeInputs applies defaults, validates arguments against the manifest
// and populates the provided Go struct using reflection. Arguments that the
// manifest does not declare are rejected.
func (c *Converter) DecodeInputs(ctx context.Context, inputStruct any, args map[string]cty.Value, def *config.NodeDefinition) error {
	logger := ctxlog.FromContext(ctx)

	for name := range args {
		if _, ok := def.Inputs[name]; !ok {
			return fmt.Errorf("node %q has no input %q", def.Key, name)
		}
	}

	structVal := reflect.ValueOf(inputStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("inputStruct must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		name := config.FieldName(field)
		inputDef, ok := def.Inputs[name]
		if name == "" || !ok {
			continue
		}
		targetPtr := structVal.Field(i).Addr().Interface()

		val, provided := args[name]
		if !provided || val.IsNull() {
			if inputDef.Default == nil {
				if inputDef.Optional {
					continue
				}
				return fmt.Errorf("missing required argument %q", name)
			}
			val = *inputDef.Default
		}

		if err := c.decode(ctx, inputDef, val, targetPtr); err != nil {
			return fmt.Errorf("failed to decode argument %q: %w", name, err)
		}
	}
	logger.Debug("Decoded node inputs.", "node", def.Key, "provided", len(args))
	return nil
}

// decode converts val to the declared input type, checks constraints and
// stores it in the Go pointer target.
func (c *Converter) decode(ctx context.Context, inputDef *config.InputDefinition, val cty.Value, target any) error {
	targetVal := reflect.ValueOf(target).Elem()

	if targetVal.Type() == ctyValueType {
		targetVal.Set(reflect.ValueOf(val))
		return nil
	}

	if inputDef.Type.IsCapsuleType() {
		return decodeCapsule(inputDef.Type, val, targetVal)
	}

	want := inputDef.Type
	if want.Equals(cty.DynamicPseudoType) {
		implied, err := gocty.ImpliedType(targetVal.Interface())
		if err != nil {
			ctxlog.FromContext(ctx).Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", targetVal.Type().String(), "error", err)
			return gocty.FromCtyValue(val, target)
		}
		want = implied
	}

	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), inputDef.TypeName(), err)
	}
	if err := checkConstraints(inputDef, converted); err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, target)
}

// decodeCapsule assigns the encapsulated pointer of a tensor value to a Go
// pointer field. The pointer is preserved, so no sample data is copied.
func decodeCapsule(want cty.Type, val cty.Value, target reflect.Value) error {
	if !val.Type().Equals(want) {
		return fmt.Errorf("expected %s, got %s", want.FriendlyName(), val.Type().FriendlyName())
	}
	ptr := reflect.ValueOf(val.EncapsulatedValue())
	if !ptr.Type().AssignableTo(target.Type()) {
		return fmt.Errorf("cannot assign %s to field of type %s", ptr.Type(), target.Type())
	}
	target.Set(ptr)
	return nil
}

// EncodeOutputs converts the tagged fields of output (a struct or pointer to
// struct) into cty values for every declared output.
func (c *Converter) EncodeOutputs(ctx context.Context, output any, def *config.NodeDefinition) (map[string]cty.Value, error) {
	structVal := reflect.ValueOf(output)
	for structVal.Kind() == reflect.Ptr {
		if structVal.IsNil() {
			return nil, fmt.Errorf("node %q returned a nil output", def.Key)
		}
		structVal = structVal.Elem()
	}
	if structVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("node %q: output must be a struct, got %s", def.Key, structVal.Kind())
	}

	fields := config.TaggedFields(structVal.Type())

	out := make(map[string]cty.Value, len(def.Outputs))
	for _, o := range def.Outputs {
		field, ok := fields[o.Name]
		if !ok {
			return nil, fmt.Errorf("node %q: output struct has no field for %q", def.Key, o.Name)
		}
		v, err := encodeValue(o.Type, structVal.FieldByIndex(field.Index))
		if err != nil {
			return nil, fmt.Errorf("node %q: failed to encode output %q: %w", def.Key, o.Name, err)
		}
		out[o.Name] = v
	}
	ctxlog.FromContext(ctx).Debug("Encoded node outputs.", "node", def.Key, "count", len(out))
	return out, nil
}

func encodeValue(ty cty.Type, fv reflect.Value) (cty.Value, error) {
	if fv.Type() == ctyValueType {
		v := fv.Interface().(cty.Value)
		if v.IsNull() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		return v, nil
	}
	if ty.IsCapsuleType() {
		if fv.Kind() != reflect.Ptr {
			return cty.NilVal, fmt.Errorf("capsule outputs must be pointers, got %s", fv.Type())
		}
		if fv.IsNil() {
			return cty.NullVal(ty), nil
		}
		return cty.CapsuleVal(ty, fv.Interface()), nil
	}
	if ty.Equals(cty.DynamicPseudoType) {
		implied, err := gocty.ImpliedType(fv.Interface())
		if err != nil {
			return cty.NilVal, err
		}
		ty = implied
	}
	return gocty.ToCtyValue(fv.Interface(), ty)
}
