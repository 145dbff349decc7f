package api

import (
	"testing"

	"github.com/mastermind-fa/product-inventory-api/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_Create(t *testing.T) {
	require.NoError(t, ValidateStruct(CreateProductRequest{Name: "Lamp", Price: 0, Stock: 0}))

	err := ValidateStruct(CreateProductRequest{Price: -1})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)
	assert.Equal(t, "name is required; price must be greater than or equal to 0", validationErr.Message)
}

func TestValidateStruct_Update(t *testing.T) {
	require.NoError(t, ValidateStruct(UpdateProductRequest{}))

	zero := 0.0
	require.NoError(t, ValidateStruct(UpdateProductRequest{Price: &zero}))

	empty := ""
	err := ValidateStruct(UpdateProductRequest{Name: &empty})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)

	negative := -3
	err = ValidateStruct(UpdateProductRequest{Stock: &negative})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "stock", validationErr.Field)
	assert.Equal(t, "stock must be greater than or equal to 0", validationErr.Message)
}
