package validators_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/edu-ciaa/enigma-sim/internal/validation/validators"
)

type rotorHolder struct {
	Numeral int `validate:"rotorindex"`
}

type offsetHolder struct {
	Offset int `validate:"offset"`
}

type reflectorHolder struct {
	Index int `validate:"reflectorindex"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := v.RegisterValidation("rotorindex", validators.ValidateRotorIndex); err != nil {
		t.Fatal(err)
	}
	if err := v.RegisterValidation("offset", validators.ValidateOffset); err != nil {
		t.Fatal(err)
	}
	if err := v.RegisterValidation("reflectorindex", validators.ValidateReflectorIndex); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestValidateRotorIndex(t *testing.T) {
	v := newValidate(t)

	assert.NoError(t, v.Struct(rotorHolder{Numeral: 1}))
	assert.NoError(t, v.Struct(rotorHolder{Numeral: 8}))
	assert.Error(t, v.Struct(rotorHolder{Numeral: 0}))
	assert.Error(t, v.Struct(rotorHolder{Numeral: 9}))
}

func TestValidateOffset(t *testing.T) {
	v := newValidate(t)

	assert.NoError(t, v.Struct(offsetHolder{Offset: 0}))
	assert.NoError(t, v.Struct(offsetHolder{Offset: 25}))
	assert.Error(t, v.Struct(offsetHolder{Offset: -1}))
	assert.Error(t, v.Struct(offsetHolder{Offset: 26}))
}

func TestValidateReflectorIndex(t *testing.T) {
	v := newValidate(t)

	assert.NoError(t, v.Struct(reflectorHolder{Index: 0}))
	assert.NoError(t, v.Struct(reflectorHolder{Index: 2}))
	assert.Error(t, v.Struct(reflectorHolder{Index: 3}))
	assert.Error(t, v.Struct(reflectorHolder{Index: -1}))
}
