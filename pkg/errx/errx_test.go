package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryProducesPrefixedCodes(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	assert.Equal(t, "WIDGET_NOT_FOUND", code)

	err := reg.New(code)
	assert.Equal(t, "WIDGET_NOT_FOUND", err.Code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
}

func TestRegistryUnknownCode(t *testing.T) {
	reg := NewRegistry("WIDGET")

	err := reg.New("WIDGET_NEVER_REGISTERED")

	assert.Equal(t, "WIDGET_UNKNOWN", err.Code)
	assert.Equal(t, TypeInternal, err.Type)
}

func TestWithDetailChains(t *testing.T) {
	err := New("boom", TypeValidation).
		WithDetail("field", "name").
		WithDetail("reason", "too short")

	require.Len(t, err.Details, 2)
	assert.Equal(t, "name", err.Details["field"])
}

func TestWrapPreservesCodedErrors(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("CONFLICT", TypeConflict, http.StatusConflict, "Widget exists")
	inner := reg.New(code)

	wrapped := Wrap(inner, "while saving", TypeInternal)

	assert.Equal(t, "WIDGET_CONFLICT", wrapped.Code)
	assert.Equal(t, TypeConflict, wrapped.Type)
	assert.Equal(t, http.StatusConflict, wrapped.HTTPStatus)
	assert.Contains(t, wrapped.Message, "while saving")
}

func TestWrapExternalError(t *testing.T) {
	cause := errors.New("connection refused")

	wrapped := Wrap(cause, "redis publish failed", TypeExternal)

	assert.Equal(t, TypeExternal, wrapped.Type)
	assert.Equal(t, http.StatusBadGateway, wrapped.HTTPStatus)
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsType(t *testing.T) {
	err := New("nope", TypeNotFound)

	assert.True(t, IsType(err, TypeNotFound))
	assert.False(t, IsType(err, TypeConflict))
	assert.False(t, IsType(errors.New("plain"), TypeNotFound))
}
