package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique-constraint failure.
// Detection matches on this code only, never on message text.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint violation
// reported by the storage engine.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
