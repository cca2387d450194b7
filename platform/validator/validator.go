// Package validator wraps request validation so handlers share one
// configured instance.
package validator

import "github.com/go-playground/validator/v10"

// Validator holds a configured go-playground validator. Passing the
// wrapper around keeps custom rule registration in one place.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates a value against its field tags.
func (val *Validator) Struct(s any) error {
	return val.v.Struct(s)
}

// Var validates a single value against a tag expression.
func (val *Validator) Var(field any, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation adds a custom rule under the given tag.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
