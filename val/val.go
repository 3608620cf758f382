// Package val provides validation functions for various data types and situations.
package val

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate //nolint: gochecknoglobals // validator caches struct metadata, one instance per process

func init() { //nolint: gochecknoinits // custom types must be registered before the first validation
	validate = validator.New()
	validate.RegisterTagNameFunc(getTagName)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	registerCustomValidations(validate)
}

// getValidator returns the process wide validator instance.
func getValidator() *validator.Validate {
	return validate
}

// getTagName returns the name of a struct field based on its struct tags.
// It checks 'json', 'query', and 'params' tags in that order, and falls back
// to the field name if none of those tags have a non-empty name component.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "query", "params"} {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}

	return fld.Name
}

// decimalValue lets numeric tags (gte, lte, gt...) work on decimal fields.
func decimalValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := v.Float64()
		return f
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		f, _ := v.Decimal.Float64()
		return f
	}
	return nil
}
