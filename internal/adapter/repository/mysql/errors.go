package mysql

import (
	"errors"

	appDomain "medmatch-backend/internal/domain/application"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
)

// translateError maps driver-level failures onto the domain taxonomy:
// a duplicate key on the active-pair index is the defense-in-depth signal
// for a concurrent submission; a lock wait timeout is retryable.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appDomain.ErrDuplicateApplication
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDuplicateEntry:
			return appDomain.ErrDuplicateApplication
		case mysqlErrLockWaitTimeout:
			return appDomain.ErrBusy
		}
	}
	return err
}
