package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBindingValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestHandleValidationError(t *testing.T) {
	validate := newBindingValidator()

	err := validate.Struct(QuestionnaireRequest{})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)

	messages, ok := detail.Details.([]string)
	require.True(t, ok)
	assert.Contains(t, messages, "Country is required")
}

func TestHandleValidationError_SingleFieldSetsField(t *testing.T) {
	validate := newBindingValidator()

	err := validate.Struct(LoginRequest{Email: "user@example.com"})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, "Password", detail.Field)
}

func TestHandleValidationError_NonValidatorError(t *testing.T) {
	detail := HandleValidationError(assert.AnError)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, assert.AnError.Error(), detail.Details)
}
