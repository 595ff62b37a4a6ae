package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityPredicate_BaseClause(t *testing.T) {
	now := time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)
	sql, args := eligibilityPredicate("test_delayed_jobs", now, "worker.1", 4*time.Hour, nil, nil, nil)

	assert.Contains(t, sql, "failed_at IS NULL")
	assert.Contains(t, sql, "run_at <= ?")
	assert.Contains(t, sql, "locked_by = ?")
	assert.NotContains(t, sql, "priority >=")
	assert.NotContains(t, sql, "priority <=")
	assert.NotContains(t, sql, "queue IN")

	// now, expired-cutoff, me for the base clause, then the singleton
	// subquery's own (now, live-cutoff, me).
	require.Len(t, args, 6)
	assert.Equal(t, now, args[0])
	assert.Equal(t, "worker.1", args[2])
}

func TestEligibilityPredicate_PriorityAndQueueBounds(t *testing.T) {
	now := time.Now()
	min, max := 0, 10
	sql, args := eligibilityPredicate("test_delayed_jobs", now, "worker.1", time.Hour, &min, &max, []string{"mailers", "exports"})

	assert.Contains(t, sql, "priority >= ?")
	assert.Contains(t, sql, "priority <= ?")
	assert.Contains(t, sql, "queue IN (?,?)")
	require.Len(t, args, 10)
	assert.Equal(t, 0, args[3])
	assert.Equal(t, 10, args[4])
	assert.Equal(t, "mailers", args[5])
	assert.Equal(t, "exports", args[6])
}

func TestSingletonExclusionSQL_ExcludesOnlyOtherLiveLockedSiblings(t *testing.T) {
	now := time.Now()
	sql, args := singletonExclusionSQL("test_delayed_jobs", now, time.Hour, "worker.1")

	assert.Contains(t, sql, "singleton IS NULL OR singleton NOT IN")
	assert.Contains(t, sql, "locked_by <> ?")
	assert.Contains(t, sql, "test_delayed_jobs")
	require.Len(t, args, 3)
	assert.Equal(t, "worker.1", args[2])
}
