package jobs

import (
	"fmt"
	"time"
)

// reserveFallback implements the generic strategy from spec.md §4.4 for
// backends with no dedicated atomic-claim statement: fetch up to
// worker.ReadAhead eligible ids in priority order, then attempt a
// conditional compare-and-swap UPDATE per id ("WHERE id=? AND still
// eligible") until one succeeds. The per-row CAS is what gives two
// concurrent Reserve calls distinct results under this strategy (spec.md
// §5) — no row-level locking is available to lean on.
//
// Whether this strategy preserves strict priority order under contention
// (a CAS failure on the top id falls through to the next-highest, which
// may itself later lose a race) is left exactly as the source behaves —
// an open question in spec.md §9 that this code does not try to resolve
// more strongly than the source did.
func (s *Store) reserveFallback(table string, now time.Time, worker Worker, maxRunTime time.Duration) (*Job, error) {
	readAhead := worker.ReadAhead
	if readAhead <= 0 {
		readAhead = 5
	}

	predicateSQL, predicateArgs := eligibilityPredicate(table, now, worker.Name, maxRunTime, worker.MinPriority, worker.MaxPriority, worker.Queues)

	listSQL := fmt.Sprintf(`
SELECT id FROM %s
WHERE %s
ORDER BY priority ASC, run_at ASC
LIMIT %d;
`, table, predicateSQL, readAhead)

	var ids []uint64
	if err := s.db.Raw(listSQL, predicateArgs...).Scan(&ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		casSQL := fmt.Sprintf(`
UPDATE %s
SET locked_at = ?, locked_by = ?
WHERE id = ? AND %s;
`, table, predicateSQL)
		casArgs := append([]any{now, worker.Name, id}, predicateArgs...)

		tx := s.db.Exec(casSQL, casArgs...)
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected != 1 {
			continue
		}

		var job Job
		if err := s.table().Where("id = ?", id).First(&job).Error; err != nil {
			return nil, err
		}
		return &job, nil
	}

	return nil, nil
}
