package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
	mysqlErrDeadlock        = 1213
)

// IsDuplicateKey reports whether err is a unique constraint violation.
// gorm translates it when TranslateError is on; the driver checks cover
// connections opened without it.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsDeadlock reports whether MySQL picked this transaction as a deadlock
// victim. The transaction has already been rolled back by the server.
func IsDeadlock(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDeadlock
}

// IsForeignKeyViolation reports whether err comes from a foreign key
// refusing the write, e.g. deleting a product a cart line still points at.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == mysqlErrRowIsReferenced || myErr.Number == mysqlErrNoReferencedRow) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
