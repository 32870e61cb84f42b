package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hireova-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("create user: %w", apperror.UniqueConstraint("email taken", cause))

	assert.ErrorIs(t, err, apperror.ErrUniqueConstraint)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, apperror.ErrValidation)

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  *apperror.AppError
		code int
		kind error
	}{
		{apperror.Validation("bad", "a: required"), http.StatusBadRequest, apperror.ErrValidation},
		{apperror.ReferentialIntegrity("missing parent", nil), http.StatusUnprocessableEntity, apperror.ErrReferentialIntegrity},
		{apperror.NotFound("nope"), http.StatusNotFound, apperror.ErrNotFound},
		{apperror.Conflict("stale"), http.StatusConflict, apperror.ErrConflict},
		{apperror.StorageUnavailable(errors.New("dial tcp")), http.StatusServiceUnavailable, apperror.ErrStorageUnavailable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.ErrorIs(t, tc.err, tc.kind)
	}
}

func TestInternalHasNoKind(t *testing.T) {
	err := apperror.Internal(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.NotErrorIs(t, err, apperror.ErrStorageUnavailable)
}
