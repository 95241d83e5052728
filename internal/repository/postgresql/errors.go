package postgresql

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// isInvalidText reports a value Postgres could not parse, e.g. a malformed uuid.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

// isUUID reports whether id can be bound to a uuid column.
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// newID returns a time-ordered UUID for a new row.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
