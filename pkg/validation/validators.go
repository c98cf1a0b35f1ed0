package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Same loose pattern the website forms use: something@something.tld, no whitespace.
var looseEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("loose_email", LooseEmail)
}

// LooseEmail accepts anything shaped like local@domain.tld. The stricter
// built-in "email" tag rejects addresses real visitors type.
func LooseEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return looseEmailRegex.MatchString(val)
}
