// Package mask flattens structs into ordered maps with sensitive fields masked,
// so that configs and inputs can be printed or logged safely.
package mask

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const tagName = "mask"

// Masked is the placeholder of masked string values.
const Masked = "***masked***"

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// StructToOrdMap returns an ordered map of the fields of v, nested structs flattened
// into dotted keys. Fields tagged with `mask:"true"` have non-zero values replaced.
// Field names are taken from the json tag, then the yaml tag, then the field name.
// Fields with json:"-" or yaml:"-" are excluded.
//
// Values implementing encoding.TextMarshaler (time.Time, decimal.Decimal, uuid.UUID...)
// are kept as leaves instead of being expanded.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}

	om := orderedmap.New[string, any]()
	flatten(om, reflect.ValueOf(v), "")
	return om
}

func flatten(om *orderedmap.OrderedMap[string, any], val reflect.Value, prefix string) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return
		}
		val = val.Elem()
	}

	if !isExpandable(val) {
		om.Set(prefix, val.Interface())
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, skip := fieldName(field)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		fv := val.Field(i)
		switch {
		case strings.EqualFold(field.Tag.Get(tagName), "true"):
			om.Set(name, maskValue(fv))
		case fv.Kind() == reflect.Pointer && fv.IsNil():
			om.Set(name, nil)
		case isExpandable(deref(fv)):
			flatten(om, fv, name)
		default:
			om.Set(name, fv.Interface())
		}
	}
}

func deref(val reflect.Value) reflect.Value {
	if val.Kind() == reflect.Pointer && !val.IsNil() {
		return val.Elem()
	}
	return val
}

func isExpandable(val reflect.Value) bool {
	if val.Kind() != reflect.Struct {
		return false
	}
	return !val.Type().Implements(textMarshalerType) && !reflect.PointerTo(val.Type()).Implements(textMarshalerType)
}

func maskValue(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds cannot be nil
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		if val.IsNil() {
			return nil
		}
	}

	val = deref(val)
	if val.IsZero() {
		return val.Interface()
	}

	if val.Kind() == reflect.String {
		return Masked
	}
	return fmt.Sprintf("***masked-%s***", val.Kind())
}

// fieldName returns the printed name of field and whether it must be skipped.
func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"json", "yaml"} {
		value, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(value, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return field.Name, false
}
