// Package jobs implements the database-backed job reservation core: the
// job row, enqueue path, reservation engine (per-backend atomic claim
// strategies), lock reclamation, and fork hooks. Job *execution* is the
// caller's concern — this package only ever hands back a claimed Job.
package jobs

import "time"

// Job is a row in <prefix>delayed_jobs. Invariant I1 (locked_at is set iff
// locked_by is set) is maintained by every mutating method in this package;
// callers should not set one of LockedAt/LockedBy without the other.
type Job struct {
	ID uint64 `gorm:"primaryKey"`

	Priority int    `gorm:"not null;default:0;index:idx_priority_run_at,priority:1"`
	Attempts int    `gorm:"not null;default:0"`
	Handler  string `gorm:"type:text;not null"`

	LastError *string `gorm:"type:text"`

	RunAt    time.Time  `gorm:"not null;index:idx_priority_run_at,priority:2"`
	LockedAt *time.Time `gorm:"index:idx_locked_at"`
	LockedBy *string    `gorm:"index:idx_locked_by"`
	FailedAt *time.Time `gorm:"index:idx_failed_at"`

	Queue     *string `gorm:"index:idx_queue"`
	Singleton *string `gorm:"index:idx_singleton"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// IsLocked reports whether the job currently holds a lease, independent of
// whether that lease has expired.
func (j *Job) IsLocked() bool {
	return j.LockedAt != nil && j.LockedBy != nil
}

// IsFailed reports whether the job has been permanently failed (I2).
func (j *Job) IsFailed() bool {
	return j.FailedAt != nil
}

// LockExpired reports whether the job has no live lease as of now, given a
// max_run_time lease duration: true when it is unlocked or its locked_at is
// older than now - maxRunTime.
func (j *Job) LockExpired(now time.Time, maxRunTime time.Duration) bool {
	if j.LockedAt == nil {
		return true
	}
	return j.LockedAt.Before(now.Add(-maxRunTime))
}
