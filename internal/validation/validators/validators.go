// Package validators holds the custom struct-tag validators registered
// against the machine's configuration.
package validators

import "github.com/go-playground/validator/v10"

// ValidateRotorIndex accepts catalog positions 1-8 (rotors I-VIII).
func ValidateRotorIndex(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 1 && v <= 8
}

// ValidateOffset accepts a rotor starting offset in 0-25.
func ValidateOffset(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= 25
}

// ValidateReflectorIndex accepts reflector selectors 0-2 (A, B, C).
func ValidateReflectorIndex(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= 2
}
