package postgres

import (
	"database/sql"
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/invotaxi/region-service/internal/pkg/errors"
)

// Коды SQLSTATE, которые переводятся в ошибки приложения
const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
	sqlStateInvalidText         = "22P02"
)

// sqlState возвращает код ошибки PostgreSQL от pgx или lib/pq
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// mapError переводит ошибку драйвера в AppError.
// notFound возвращается для отсутствующей строки и для ID, который не является UUID.
func mapError(err error, notFound *errors.AppError, onForeignKey *errors.AppError) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	switch sqlState(err) {
	case sqlStateInvalidText:
		return notFound
	case sqlStateForeignKeyViolation:
		if onForeignKey != nil {
			return onForeignKey
		}
	case sqlStateUniqueViolation:
		return errors.ErrCityExists
	case sqlStateCheckViolation:
		return errors.ErrInvalidValue.Wrap(err)
	}
	return errors.ErrDatabaseError.Wrap(err)
}
