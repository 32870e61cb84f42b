package postgres

import (
	"context"
	"errors"
	"strings"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes we translate.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNotNullViolation     = "23502"
	codeInvalidTextRepr      = "22P02"
	codeStringTooLong        = "22001"
	codeTooManyConnections   = "53300"
	codeAdminShutdown        = "57P01"
	codeCrashShutdown        = "57P02"
	codeCannotConnectNow     = "57P03"
	classConnectionException = "08"
)

// mapError translates driver errors into apperror kinds. entity names the
// resource for NotFound messages.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound(entity + " not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return apperror.UniqueConstraint(domain.ConstraintMessage(pgErr.ConstraintName), err)
		case pgErr.Code == codeForeignKeyViolation:
			return apperror.ReferentialIntegrity(domain.ConstraintMessage(pgErr.ConstraintName), err)
		case pgErr.Code == codeCheckViolation:
			e := apperror.Validation(domain.ConstraintMessage(pgErr.ConstraintName))
			e.Err = err
			return e
		case pgErr.Code == codeNotNullViolation, pgErr.Code == codeInvalidTextRepr, pgErr.Code == codeStringTooLong:
			e := apperror.Validation("Invalid value for " + columnOrField(pgErr))
			e.Err = err
			return e
		case strings.HasPrefix(pgErr.Code, classConnectionException),
			pgErr.Code == codeTooManyConnections,
			pgErr.Code == codeAdminShutdown,
			pgErr.Code == codeCrashShutdown,
			pgErr.Code == codeCannotConnectNow:
			return apperror.StorageUnavailable(err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.StorageUnavailable(err)
	}

	return err
}

func columnOrField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return "field"
}
