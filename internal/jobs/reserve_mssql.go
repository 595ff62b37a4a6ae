package jobs

import (
	"fmt"
	"time"

	"jobres/internal/retry"
)

// reserveMSSQL performs the claim strategy from spec.md §4.4 shared by
// MSSQL and Teradata: UPDATE ... WHERE id IN (SELECT id FROM (<eligible
// LIMIT 1>) AS x), then a re-SELECT since the driver can't return the
// updated row in one round-trip. Structurally this is the same
// non-atomic two-step shape as the MySQL path, so it is wrapped in the
// same deadlock-retry wrapper even though spec.md's retry callout names
// only the MySQL path explicitly (see DESIGN.md).
func (s *Store) reserveMSSQL(table string, now time.Time, worker Worker, maxRunTime time.Duration) (*Job, error) {
	predicateSQL, predicateArgs := eligibilityPredicate(table, now, worker.Name, maxRunTime, worker.MinPriority, worker.MaxPriority, worker.Queues)

	updateSQL := fmt.Sprintf(`
UPDATE %s
SET locked_at = ?, locked_by = ?
WHERE id IN (
	SELECT id FROM (
		SELECT TOP 1 id FROM %s
		WHERE %s
		ORDER BY priority ASC, run_at ASC
	) AS x
);
`, table, table, predicateSQL)
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
SELECT TOP 1 * FROM %s
WHERE locked_at = ? AND locked_by = ? AND failed_at IS NULL
ORDER BY priority ASC, run_at ASC;
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
