package jobs

import (
	"fmt"
	"strings"
	"time"
)

// eligibilityPredicate builds the shared WHERE fragment and bound args for
// E(now, me, T) plus the singleton-exclusion subquery from spec.md §4.4.
// The nested "temp" derived table in the singleton subquery is mandatory
// under MySQL (it bypasses "can't self-select a locked table") and is kept
// for every backend for portability, per spec.md.
func eligibilityPredicate(table string, now time.Time, me string, maxRunTime time.Duration, minPriority, maxPriority *int, queues []string) (string, []any) {
	var sb strings.Builder
	var args []any

	expired := now.Add(-maxRunTime)

	sb.WriteString("failed_at IS NULL")
	sb.WriteString(" AND ((run_at <= ? AND (locked_at IS NULL OR locked_at < ?)) OR locked_by = ?)")
	args = append(args, now, expired, me)

	if minPriority != nil {
		sb.WriteString(" AND priority >= ?")
		args = append(args, *minPriority)
	}
	if maxPriority != nil {
		sb.WriteString(" AND priority <= ?")
		args = append(args, *maxPriority)
	}

	if len(queues) > 0 {
		placeholders := make([]string, len(queues))
		for i, q := range queues {
			placeholders[i] = "?"
			args = append(args, q)
		}
		sb.WriteString(" AND queue IN (" + strings.Join(placeholders, ",") + ")")
	}

	singletonSQL, singletonArgs := singletonExclusionSQL(table, now, maxRunTime, me)
	sb.WriteString(" AND ")
	sb.WriteString(singletonSQL)
	args = append(args, singletonArgs...)

	return sb.String(), args
}

// singletonExclusionSQL builds the "a row is excluded if its singleton
// class has another live-locked job" clause from spec.md §4.4.
func singletonExclusionSQL(table string, now time.Time, maxRunTime time.Duration, me string) (string, []any) {
	live := now.Add(-maxRunTime)
	sql := fmt.Sprintf(`(singleton IS NULL OR singleton NOT IN (
		SELECT singleton FROM (
			SELECT DISTINCT singleton FROM %s
			WHERE run_at <= ?
			  AND singleton IS NOT NULL
			  AND locked_at IS NOT NULL AND locked_at >= ?
			  AND locked_by <> ?
			  AND failed_at IS NULL
		) AS temp
	))`, table)
	return sql, []any{now, live, me}
}
