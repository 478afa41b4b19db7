package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := domain.MissingField("reference")

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, errors.Is(err, domain.ErrDuplicate))
	assert.Contains(t, err.Error(), "reference")
}

func TestValidationError_EnvueltoConservaElCampo(t *testing.T) {
	wrapped := fmt.Errorf("crear producto: %w", domain.MissingField("category_id"))

	var vErr *domain.ValidationError
	assert.True(t, errors.As(wrapped, &vErr))
	assert.Equal(t, "category_id", vErr.Field)
	assert.True(t, errors.Is(wrapped, domain.ErrInvalidInput))
}
