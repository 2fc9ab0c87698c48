// Package validator wraps go-playground/validator for request and contact validation.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var usZip = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator with the "us_zip" rule registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("us_zip", func(fl validator.FieldLevel) bool {
		return usZip.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// ValidEmail reports whether addr is a well-formed email address.
func (val *Validator) ValidEmail(addr string) bool {
	return addr != "" && val.v.Var(addr, "required,email") == nil
}
