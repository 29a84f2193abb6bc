package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Rating   int    `validate:"gte=1,lte=5"`
}

func TestValidateStructAllFieldsReported(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Email: "not-an-email", Rating: 9})

	assert.Len(t, errs, 3)
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Equal(t, "This field is required", errs["Password"])
	assert.Equal(t, "Must be at most 5", errs["Rating"])
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(sampleRequest{
		Email:    "a@example.com",
		Password: "longenough",
		Rating:   3,
	})

	assert.Nil(t, errs)
}

func TestFormatValidationErrors(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(nil))

	formatted := FormatValidationErrors(map[string]string{"Email": "Invalid email format"})
	assert.Equal(t, "Email: Invalid email format", formatted)
}
