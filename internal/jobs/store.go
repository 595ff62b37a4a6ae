package jobs

import (
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"jobres/internal/clock"
	"jobres/internal/config"
	"jobres/internal/retry"
)

// ErrNotFound is returned when a job row doesn't exist.
var ErrNotFound = errors.New("jobs: not found")

// Store is the JobBackend-ish abstraction spec.md §9 calls for: a thin,
// interface-shaped wrapper around the table that Save/Destroy/Reserve all
// share. It holds no state of its own beyond the DB handle, clock, and
// runtime config — every query re-reads the table name from cfg, matching
// the "read every knob freshly per call" policy from spec.md §5.
type Store struct {
	db    *gorm.DB
	clock *clock.Clock
	cfg   *config.RuntimeConfig
}

func NewStore(db *gorm.DB, clk *clock.Clock, cfg *config.RuntimeConfig) *Store {
	return &Store{db: db, clock: clk, cfg: cfg}
}

func (s *Store) table() *gorm.DB {
	return s.db.Table(s.cfg.TableName())
}

// GetByID fetches a single job by id.
func (s *Store) GetByID(id uint64) (*Job, error) {
	var j Job
	if err := s.table().Where("id = ?", id).First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// Save persists j, applying I5 (run_at defaults to now when zero) and
// running through the deadlock-retry wrapper.
func (s *Store) Save(j *Job) error {
	if j.RunAt.IsZero() {
		j.RunAt = s.clock.Now()
	}
	return retry.OnDeadlock(func() error {
		return s.table().Save(j).Error
	})
}

// Destroy deletes j, first enforcing I4: if j.Singleton is non-nil, every
// other non-deleted row sharing that singleton value is also deleted. dst,
// if non-nil, additionally receives the decoded handler payload as a
// caller convenience — it plays no part in whether the I4 cleanup runs.
// The handler is always decoded into a generic target internally (merely
// to confirm it deserializes), independent of dst, so sibling cleanup
// triggers on every real call site, not only ones that happen to pass a
// concrete dst. A deserialization failure is logged and the singleton
// cleanup is skipped — it does not abort the destroy itself (spec.md §4.2).
func (s *Store) Destroy(j *Job, dst Payload) error {
	return retry.OnDeadlock(func() error {
		if j.Singleton != nil {
			var probe json.RawMessage
			if err := DecodePayload(j.Handler, &probe); err != nil {
				var derr *DeserializationError
				if errors.As(err, &derr) {
					log.Printf("[jobs] job_id=%d singleton=%s handler deserialize failed, skipping sibling cleanup: %v", j.ID, *j.Singleton, err)
				} else {
					return err
				}
			} else {
				if err := s.removeOthersFromSingletonQueue(j); err != nil {
					return err
				}
			}
		}

		if dst != nil {
			if err := DecodePayload(j.Handler, dst); err != nil {
				var derr *DeserializationError
				if !errors.As(err, &derr) {
					return err
				}
			}
		}

		return s.table().Delete(&Job{}, "id = ?", j.ID).Error
	})
}

// removeOthersFromSingletonQueue implements I4's "delete of a successful
// singleton clears its pending duplicates" policy.
func (s *Store) removeOthersFromSingletonQueue(j *Job) error {
	return s.table().
		Where("singleton = ? AND id <> ?", *j.Singleton, j.ID).
		Delete(&Job{}).Error
}

// ClearLocks releases every lock held by workerName, wrapped in the
// deadlock-retry wrapper. Not strictly required for correctness (I2
// recovers via lock expiry too) but shortens the window during which
// singleton-excluded siblings stay blocked.
func (s *Store) ClearLocks(workerName string) error {
	return retry.OnDeadlock(func() error {
		return s.table().
			Where("locked_by = ?", workerName).
			Updates(map[string]any{"locked_by": nil, "locked_at": nil}).Error
	})
}
