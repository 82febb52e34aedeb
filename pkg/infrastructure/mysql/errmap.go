package mysql

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"marketplace/pkg/domain/model"
)

const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
	mysqlErrDuplicateEntry  = 1062
)

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}

// wrapStorageErr translates driver-level failures into the domain taxonomy:
// deadlocks and lock waits become retryable conflicts, everything else
// becomes ErrStorageUnavailable. Raw driver errors never cross the
// infrastructure boundary unmapped; the original message stays attached for
// logging.
func wrapStorageErr(err error, msg string) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDeadlock, mysqlErrLockWaitTimeout:
			return errors.Wrapf(model.ErrTransactionConflict, "%s: %s", msg, err)
		}
	}
	return errors.Wrapf(model.ErrStorageUnavailable, "%s: %s", msg, err)
}
