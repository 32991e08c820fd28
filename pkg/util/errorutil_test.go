package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughDomainErrors(t *testing.T) {
	original := NewUnauthorized("invalid token")

	mapped := ToDomainError(fmt.Errorf("handler: %w", original))

	require.NotNil(t, mapped)
	assert.Equal(t, "UNAUTHORIZED", mapped.Code)
	assert.Equal(t, http.StatusUnauthorized, mapped.HTTPStatus)
}

func TestToDomainError_MapsNoRowsToNotFound(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)

	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainError_WrapsUnknownErrors(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))

	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, "internal server error", mapped.Message)
}

func TestValidationError_Details(t *testing.T) {
	err := NewValidationError("check input", map[string]string{"email": "bad"})

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
	fieldErrors, ok := domainErr.Details["field_errors"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "bad", fieldErrors["email"])
}

func TestDomainError_UnwrapPreservesCause(t *testing.T) {
	cause := errors.New("bucket missing")
	err := NewStorageUnavailable(cause)

	assert.ErrorIs(t, err, cause)
}
