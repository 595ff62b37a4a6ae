package jobs

import (
	"fmt"
	"time"

	"jobres/internal/retry"
)

// reserveMySQL performs the two-step claim from spec.md §4.4: an UPDATE
// with the filter+order applied directly (MySQL permits ORDER BY/LIMIT on
// UPDATE), then a re-SELECT by (locked_at, locked_by, failed_at IS NULL)
// since the driver can't return the updated row in one statement. now is
// truncated to whole seconds to match MySQL DATETIME's lack of sub-second
// precision. Wrapped in the deadlock-retry wrapper: the singleton subquery
// is not atomic with the outer UPDATE, so contention here is expected.
func (s *Store) reserveMySQL(table string, now time.Time, worker Worker, maxRunTime time.Duration) (*Job, error) {
	now = now.Truncate(time.Second)

	predicateSQL, predicateArgs := eligibilityPredicate(table, now, worker.Name, maxRunTime, worker.MinPriority, worker.MaxPriority, worker.Queues)

	updateSQL := fmt.Sprintf(`
UPDATE %s
SET locked_at = ?, locked_by = ?
WHERE %s
ORDER BY priority ASC, run_at ASC
LIMIT 1;
`, table, predicateSQL)
	updateArgs := append([]any{now, worker.Name}, predicateArgs...)

	var rowsAffected int64
	err := retry.OnDeadlock(func() error {
		tx := s.db.Exec(updateSQL, updateArgs...)
		if tx.Error != nil {
			return tx.Error
		}
		rowsAffected = tx.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	selectSQL := fmt.Sprintf(`
SELECT * FROM %s
WHERE locked_at = ? AND locked_by = ? AND failed_at IS NULL
ORDER BY priority ASC, run_at ASC
LIMIT 1;
`, table)

	var job Job
	if err := s.db.Raw(selectSQL, now, worker.Name).Scan(&job).Error; err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, nil
	}
	return &job, nil
}
