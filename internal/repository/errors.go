// Package repository defines the SQL data access layer and the sentinel
// errors shared by its repositories.  Services translate these sentinels
// into client-facing error kinds; handlers never see raw driver errors.
package repository

import (
    "errors"
    "strings"

    "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by UserRepo.Create when the unique key on
// users.email rejects the insert.
var ErrEmailExists = errors.New("email already exists")

// ErrAlreadyCheckedIn is returned when a booking already has a check-in
// record, either observed up front or reported by the unique key on
// checkins.booking_id when two check-ins race.
var ErrAlreadyCheckedIn = errors.New("booking already checked in")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a unique-constraint violation from
// MySQL or SQLite.
func isDuplicateKey(err error) bool {
    if err == nil {
        return false
    }
    var myErr *mysql.MySQLError
    if errors.As(err, &myErr) {
        return myErr.Number == mysqlDuplicateEntry
    }
    msg := strings.ToLower(err.Error())
    return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "1062")
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...any) error
}
