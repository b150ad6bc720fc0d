package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glensd/personalExpenseTracker/internal/core"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

// conflict maps a unique-constraint violation from either driver onto core.ErrConflict.
// Other errors are returned unchanged.
func conflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", core.ErrConflict, pgErr.ConstraintName)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && isSQLiteUnique(liteErr.Code(), liteErr.Error()) {
		return fmt.Errorf("%w: %s", core.ErrConflict, liteErr.Error())
	}
	return err
}

func isSQLiteUnique(code int, msg string) bool {
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// Without extended result codes only the primary code and message are available.
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "UNIQUE constraint failed")
}
