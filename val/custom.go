package val

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const productCodeTag = "product_code"

var productCodeRe = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{1,31}$`)

// IsProductCode checks if code is a valid product code.
// Format: 2 to 32 upper case letters, digits, '-' or '_', starting with a letter or digit.
func IsProductCode(code string) bool {
	return productCodeRe.MatchString(code)
}

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation(productCodeTag, func(fl validator.FieldLevel) bool {
		return IsProductCode(fl.Field().String())
	})
}
