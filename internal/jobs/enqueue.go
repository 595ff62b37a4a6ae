package jobs

import "time"

// EnqueueOptions mirrors the source enqueue(payload, options) call's
// option bag. Zero values fall back to the defaults in spec.md §4.3:
// Priority=0, RunAt=now(), everything else unset.
type EnqueueOptions struct {
	Priority  int
	RunAt     time.Time
	Queue     *string
	FailedAt  *time.Time
	LockedAt  *time.Time
	LockedBy  *string
	Singleton *string
}

// Enqueue persists a new job row for payload. If payload implements
// SingletonQueueNamer, its returned name overrides opts.Singleton
// (spec.md §4.3's derivation rule takes priority over the caller).
func (s *Store) Enqueue(payload Payload, opts EnqueueOptions) (*Job, error) {
	handler, err := EncodePayload(payload)
	if err != nil {
		return nil, err
	}

	singleton := opts.Singleton
	if name, ok := singletonNameOf(payload); ok && name != "" {
		singleton = &name
	}

	j := &Job{
		Priority:  opts.Priority,
		Handler:   handler,
		RunAt:     opts.RunAt,
		Queue:     opts.Queue,
		FailedAt:  opts.FailedAt,
		LockedAt:  opts.LockedAt,
		LockedBy:  opts.LockedBy,
		Singleton: singleton,
	}

	if err := s.Save(j); err != nil {
		return nil, err
	}
	return j, nil
}
