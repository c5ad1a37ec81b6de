package sqldb

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	checkViolation
	foreignKeyViolation
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

// classify определяет тип нарушения ограничения и возвращает детали
// (имя ограничения или текст ошибки), по которым видно, какое поле конфликтует.
func classify(err error) (violation, string) {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		msg := sqliteErr.Error()
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation, msg
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return checkViolation, msg
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation, msg
		}

		// без extended result codes остается только текст
		if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			switch {
			case strings.Contains(msg, "UNIQUE"):
				return uniqueViolation, msg
			case strings.Contains(msg, "CHECK"):
				return checkViolation, msg
			case strings.Contains(msg, "FOREIGN KEY"):
				return foreignKeyViolation, msg
			}
		}
		return noViolation, ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return uniqueViolation, pgErr.ConstraintName
		case pgCheckViolation:
			return checkViolation, pgErr.ConstraintName
		case pgForeignKeyViolation:
			return foreignKeyViolation, pgErr.ConstraintName
		}
	}

	return noViolation, ""
}
