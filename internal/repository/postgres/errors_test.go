package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{
			name:    "unique email",
			err:     &pgconn.PgError{Code: "23505", ConstraintName: domain.ConstraintUserEmail},
			kind:    apperror.ErrUniqueConstraint,
			message: "A user with this email already exists",
		},
		{
			name:    "foreign key",
			err:     &pgconn.PgError{Code: "23503", ConstraintName: domain.ConstraintJobOrganization},
			kind:    apperror.ErrReferentialIntegrity,
			message: "Organization does not exist",
		},
		{
			name:    "check constraint",
			err:     &pgconn.PgError{Code: "23514", ConstraintName: domain.ConstraintApplicationAIScore},
			kind:    apperror.ErrValidation,
			message: "AI score must be between 0 and 100",
		},
		{
			name:    "invalid text",
			err:     &pgconn.PgError{Code: "22P02", ColumnName: "id"},
			kind:    apperror.ErrValidation,
			message: "Invalid value for id",
		},
		{
			name: "too many connections",
			err:  &pgconn.PgError{Code: "53300"},
			kind: apperror.ErrStorageUnavailable,
		},
		{
			name: "connection exception class",
			err:  &pgconn.PgError{Code: "08006"},
			kind: apperror.ErrStorageUnavailable,
		},
		{
			name: "admin shutdown",
			err:  &pgconn.PgError{Code: "57P01"},
			kind: apperror.ErrStorageUnavailable,
		},
		{
			name: "acquire deadline",
			err:  fmt.Errorf("acquire: %w", context.DeadlineExceeded),
			kind: apperror.ErrStorageUnavailable,
		},
		{
			name:    "no rows",
			err:     pgx.ErrNoRows,
			kind:    apperror.ErrNotFound,
			message: "Job not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "Job")
			require.Error(t, got)
			assert.ErrorIs(t, got, tt.kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, got.Error())
			}
		})
	}
}

func TestMapErrorKeepsCause(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: domain.ConstraintCandidateLinkedinID}
	got := mapError(pgErr, "Candidate")

	var cause *pgconn.PgError
	require.True(t, errors.As(got, &cause))
	assert.Equal(t, domain.ConstraintCandidateLinkedinID, cause.ConstraintName)
}

func TestMapErrorPassthrough(t *testing.T) {
	assert.NoError(t, mapError(nil, "Job"))

	appErr := apperror.Conflict("stale")
	assert.Same(t, appErr, mapError(appErr, "Job"))

	plain := errors.New("boom")
	assert.Equal(t, plain, mapError(plain, "Job"))

	unknown := &pgconn.PgError{Code: "42601"}
	assert.Equal(t, error(unknown), mapError(unknown, "Job"))
}

func TestWhereBuilder(t *testing.T) {
	w := &where{}
	assert.Equal(t, "", w.String())

	orgID := uuid.New()
	w.add("organization_id = $%d", orgID)
	w.add("status = $%d", "active")
	assert.Equal(t, " WHERE organization_id = $1 AND status = $2", w.String())

	clause, args := w.page(10, 20)
	assert.Equal(t, " LIMIT $3 OFFSET $4", clause)
	assert.Equal(t, []any{orgID, "active", 10, 20}, args)
	assert.Len(t, w.args, 2)
}

func TestJSONArg(t *testing.T) {
	got, err := jsonArg(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = jsonArg(map[string]any{"years": 3})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"years":3}`, *got)

	_, err = jsonArg(map[string]any{"bad": make(chan int)})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
