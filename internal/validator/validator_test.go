package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,username"`
	Status   string `json:"status" validate:"omitempty,member-status"`
	State    string `json:"state" validate:"omitempty,submission-status"`
	Amount   int64  `json:"amount" validate:"gt=0"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Email: "a@x.io", Username: "alice_01", Status: "Mineral Dealers", State: "in-progress", Amount: 1})
	assert.NoError(t, err)
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&sample{Email: "nope", Username: "a!", Status: "Pirates", State: "done"})

	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors, "username")
	assert.Equal(t, "Must be a known member category", vErr.Errors["status"])
	assert.Contains(t, vErr.Errors, "state")
	assert.Equal(t, "Must be greater than 0", vErr.Errors["amount"])
	assert.Contains(t, vErr.Error(), "field 'amount'")
}

func TestValidate_Required(t *testing.T) {
	v := New()

	err := v.Validate(&sample{Amount: 1})

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["email"])
	assert.Equal(t, "This field is required", vErr.Errors["username"])
}
