package jobs

// ListFilter narrows the admin surface's job listing (SPEC_FULL.md §4.9).
// A nil/empty Queue, Failed or Locked leaves that dimension unfiltered; a
// Limit outside 1..500 is replaced by 100.
type ListFilter struct {
	Queue  string
	Failed *bool
	Locked *bool
	Limit  int
}

// List returns jobs matching filter, newest run_at first, for the admin
// introspection surface. It is not part of the reservation/execution path
// and does not go through the deadlock-retry wrapper.
func (s *Store) List(filter ListFilter) ([]Job, error) {
	q := s.table()

	if filter.Queue != "" {
		q = q.Where("queue = ?", filter.Queue)
	}
	if filter.Failed != nil {
		if *filter.Failed {
			q = q.Where("failed_at IS NOT NULL")
		} else {
			q = q.Where("failed_at IS NULL")
		}
	}
	if filter.Locked != nil {
		if *filter.Locked {
			q = q.Where("locked_at IS NOT NULL")
		} else {
			q = q.Where("locked_at IS NULL")
		}
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var rows []Job
	if err := q.Order("run_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Unlock clears a job's lease, the admin surface's manual-intervention
// counterpart to lock expiry reclamation.
func (s *Store) Unlock(j *Job) error {
	j.LockedAt = nil
	j.LockedBy = nil
	return s.Save(j)
}
