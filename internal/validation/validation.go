// Package validation registers the struct-tag validators used by the
// application wiring to reject an invalid machine configuration before
// the cipher engine is constructed from it.
package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/edu-ciaa/enigma-sim/internal/validation/validators"
)

// New builds a validator.Validate with the machine's custom tags
// registered: rotorindex, offset, reflectorindex.
func New() (*validator.Validate, error) {
	validate := validator.New()
	if err := validate.RegisterValidation("rotorindex", validators.ValidateRotorIndex); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("offset", validators.ValidateOffset); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("reflectorindex", validators.ValidateReflectorIndex); err != nil {
		return nil, err
	}
	return validate, nil
}
