package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	err := NewInvalidStatus("shipped")
	domainErr := ToDomainError(err)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
	assert.Equal(t, "shipped", domainErr.Details["status"])
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestAuditWriteFailureKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewAuditWriteFailure("assignment-1", cause)

	domainErr := ToDomainError(err)
	require.Equal(t, "AUDIT_WRITE_FAILED", domainErr.Code)
	assert.Equal(t, "assignment-1", domainErr.Details["assignment_id"])
	assert.ErrorIs(t, err, cause)
}
