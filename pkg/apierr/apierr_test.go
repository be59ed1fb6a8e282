package apierr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modacart/catalog/pkg/apierr"
)

func TestAsPassesThroughTypedErrors(t *testing.T) {
	orig := apierr.NotFound("product")
	wrapped := fmt.Errorf("loading: %w", orig)

	ae := apierr.As(wrapped)
	assert.Equal(t, apierr.KindNotFound, ae.Kind)
	assert.Equal(t, "product not found", ae.Message)
}

func TestAsWrapsUnknownErrorsAsInternal(t *testing.T) {
	ae := apierr.As(errors.New("boom"))
	assert.Equal(t, apierr.KindInternal, ae.Kind)
	assert.Equal(t, "internal error", ae.Message, "raw cause must not leak into the message")
}

func TestIsKind(t *testing.T) {
	err := apierr.Conflict("duplicate slug", nil)
	assert.True(t, apierr.IsKind(err, apierr.KindConflict))
	assert.False(t, apierr.IsKind(err, apierr.KindValidation))
	assert.False(t, apierr.IsKind(errors.New("plain"), apierr.KindConflict))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apierr.Internal("attribute lookup failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestValidationFields(t *testing.T) {
	err := apierr.Validation("price", "must be >= 0")
	assert.Equal(t, map[string]string{"price": "must be >= 0"}, err.Fields)
	assert.Equal(t, "validation failed", err.Message)
}
