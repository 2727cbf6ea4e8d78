package config

import (
	"reflect"
	"strings"
)

// TagName is the struct tag that binds Go fields to manifest inputs and
// outputs.
const TagName = "fggo"

// FieldName returns the manifest name bound to a struct field, or "" when
// the field is unexported or not bound.
func FieldName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	name := strings.Split(field.Tag.Get(TagName), ",")[0]
	if name == "-" {
		return ""
	}
	return name
}

// TaggedFields maps manifest names to the bound fields of a struct type.
func TaggedFields(t reflect.Type) map[string]reflect.StructField {
	fields := make(map[string]reflect.StructField)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if name := FieldName(f); name != "" {
			fields[name] = f
		}
	}
	return fields
}
