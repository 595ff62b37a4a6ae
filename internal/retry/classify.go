package retry

import (
	"errors"
	"strings"

	"github.com/VividCortex/mysqlerr"
	"github.com/go-sql-driver/mysql"
)

// deadlockSubstrings are the two literal driver messages the source
// algorithm matches on.
var deadlockSubstrings = []string{
	"Lock wait timeout exceeded",
	"Deadlock found when trying to get lock",
}

// IsDeadlockError reports whether err represents transient lock contention
// eligible for retry: either its message contains one of the two literal
// substrings, or it is a *mysql.MySQLError carrying one of the matching
// driver error codes (grounded on fleetdm-fleet's retryableError, which
// classifies by code rather than by re-parsing the message).
func IsDeadlockError(err error) bool {
	if err == nil {
		return false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlerr.ER_LOCK_DEADLOCK, mysqlerr.ER_LOCK_WAIT_TIMEOUT:
			return true
		}
	}

	msg := err.Error()
	for _, s := range deadlockSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
