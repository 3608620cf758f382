package val

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

// CodeValidationFailed is the code of every error returned by ValidateSchema.
const CodeValidationFailed = "VALIDATION_FAILED"

// ValidateSchema validates schema against its validate tags.
// Failures are returned as a T_Validation error whose fields map each
// offending field to a human readable description.
func ValidateSchema(schema any) error {
	err := getValidator().Struct(schema)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errx.Wrap(err, errx.WithCode(CodeValidationFailed), errx.WithType(errx.T_Validation))
	}

	fields := make(errx.M, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = describe(fe)
	}

	return errx.New(
		"Validation failed. See fields for details.",
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
		errx.WithFields(fields),
	)
}

type describer func(fe validator.FieldError) string

// descriptions holds the messages of the tags used by catalog schemas.
var descriptions = map[string]describer{
	"required": fixed("This field is required"),
	"numeric":  fixed("Must be a valid number"),
	"alphanum": fixed("Must contain only alphanumeric characters"),

	"min": sized("Must be at least %s characters", "Must be at least %s"),
	"max": sized("Must be at most %s characters", "Must be at most %s"),
	"len": sized("Must be exactly %s characters", "Must have exactly %s items"),

	"gt":  bound("Must be greater than %s"),
	"gte": bound("Must be greater than or equal to %s"),
	"lt":  bound("Must be less than %s"),
	"lte": bound("Must be less than or equal to %s"),

	"oneof": func(fe validator.FieldError) string {
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	},

	productCodeTag: fixed("Must be 2-32 upper case letters, digits, '-' or '_'"),
}

func describe(fe validator.FieldError) string {
	if d, ok := descriptions[fe.Tag()]; ok {
		return d(fe)
	}
	return "Failed validation: " + fe.Tag()
}

func fixed(msg string) describer {
	return func(validator.FieldError) string { return msg }
}

func bound(format string) describer {
	return func(fe validator.FieldError) string { return fmt.Sprintf(format, fe.Param()) }
}

// sized picks the string format for string fields and the other one for numbers and collections.
func sized(stringFormat, otherFormat string) describer {
	return func(fe validator.FieldError) string {
		if fe.Kind() == reflect.String {
			return fmt.Sprintf(stringFormat, fe.Param())
		}
		return fmt.Sprintf(otherFormat, fe.Param())
	}
}
