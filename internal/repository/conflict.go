package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// mapConflict translates a unique-constraint violation into ErrDuplicateEmail or
// ErrDuplicateUsername. Any other error is returned as is.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgerrcode.UniqueViolation {
			return err
		}
		return conflictFor(pgErr.ConstraintName + " " + pgErr.Detail)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code != sqlite3.SQLITE_CONSTRAINT_UNIQUE && code&0xff != sqlite3.SQLITE_CONSTRAINT {
			return err
		}
		// "UNIQUE constraint failed: users.email"
		msg := liteErr.Error()
		if !strings.Contains(msg, "UNIQUE") {
			return err
		}
		return conflictFor(msg)
	}
	return err
}

func conflictFor(where string) error {
	switch {
	case strings.Contains(where, "email"):
		return ErrDuplicateEmail
	case strings.Contains(where, "username"):
		return ErrDuplicateUsername
	default:
		// a unique violation on an unknown column; email is the only one users can
		// realistically collide on through signup
		return ErrDuplicateEmail
	}
}
