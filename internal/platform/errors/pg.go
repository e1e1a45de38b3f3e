package errors

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes with a dedicated mapping
const (
	sqlUniqueViolation     = "23505"
	sqlForeignKeyViolation = "23503"
	sqlNotNullViolation    = "23502"
	sqlCheckViolation      = "23514"
	sqlStringTruncation    = "22001"
	sqlInvalidText         = "22P02"
	sqlReadOnlyTx          = "25006"
	sqlCannotConnectNow    = "57P03"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsDuplicateKey reports a unique constraint violation anywhere in the chain
func IsDuplicateKey(err error) bool { return sqlState(err) == sqlUniqueViolation }

// IsCheckViolation reports a check constraint violation anywhere in the chain
func IsCheckViolation(err error) bool { return sqlState(err) == sqlCheckViolation }

// dbCode classifies a storage error; errors already carrying a code keep it
func dbCode(err error) ErrorCode {
	switch sqlState(err) {
	case "":
	case sqlUniqueViolation:
		return ErrorCodeDuplicateKey
	case sqlForeignKeyViolation, sqlStringTruncation, sqlInvalidText:
		return ErrorCodeInvalidArgument
	case sqlNotNullViolation, sqlCheckViolation:
		return ErrorCodeValidation
	case sqlReadOnlyTx, sqlCannotConnectNow:
		return ErrorCodeUnavailable
	default:
		return ErrorCodeDB
	}

	switch {
	case stderrs.Is(err, pgx.ErrNoRows):
		return ErrorCodeNotFound
	case stderrs.Is(err, context.Canceled), stderrs.Is(err, context.DeadlineExceeded):
		return ErrorCodeUnavailable
	}
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeDB
}

// FromPostgres wraps a storage error with msg and a code derived from it; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, dbCode(err), msg)
}

// FromPostgresf is FromPostgres with formatting
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, dbCode(err), fmt.Sprintf(format, a...))
}
