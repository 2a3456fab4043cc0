package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// constraintError maps a constraint name to the business error it signals.
type constraintError map[string]error

// translate returns the mapped business error for err when err is a
// PostgreSQL constraint violation on a known constraint, and err otherwise.
func (c constraintError) translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
		if mapped, ok := c[pgErr.ConstraintName]; ok {
			return mapped
		}
	}
	return err
}
