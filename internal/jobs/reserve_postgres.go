package jobs

import (
	"fmt"
	"time"
)

// reservePostgres performs the single-statement atomic claim from
// spec.md §4.4: the row-level FOR UPDATE inside the subquery is required —
// relying on the driver's LIMIT rewrite instead would omit it and produce
// conflicts between concurrent reservations. Not wrapped in the
// deadlock-retry wrapper: a single statement needs no retry plumbing.
func (s *Store) reservePostgres(table string, now time.Time, worker Worker, maxRunTime time.Duration) (*Job, error) {
	predicateSQL, predicateArgs := eligibilityPredicate(table, now, worker.Name, maxRunTime, worker.MinPriority, worker.MaxPriority, worker.Queues)

	sql := fmt.Sprintf(`
UPDATE %s
SET locked_at = ?, locked_by = ?
WHERE id IN (
	SELECT id FROM %s
	WHERE %s
	ORDER BY priority ASC, run_at ASC
	LIMIT 1
	FOR UPDATE
)
RETURNING *;
`, table, table, predicateSQL)

	args := append([]any{now, worker.Name}, predicateArgs...)

	var job Job
	if err := s.db.Raw(sql, args...).Scan(&job).Error; err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, nil
	}
	return &job, nil
}
