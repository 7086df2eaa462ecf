package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgInvalidTextRepr     = "22P02"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == pgUniqueViolation }

// isBadUUID reports a malformed uuid parameter; lookups treat it as not found.
func isBadUUID(err error) bool { return pgCode(err) == pgInvalidTextRepr }

func isForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }

// isOutOfRange reports an integer overflow, e.g. a merged cart quantity past INTEGER.
func isOutOfRange(err error) bool { return pgCode(err) == pgNumericOutOfRange }
