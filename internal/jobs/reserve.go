package jobs

import "time"

// Reserve atomically claims the single highest-priority eligible job for
// worker, or returns (nil, nil) if none is eligible — "no work" is not an
// error (spec.md §4.4). maxRunTime is the lock lease duration; a zero
// value falls back to the worker's configured default via MaxRunTime.
//
// Dispatch is by db.Dialector.Name(), read fresh on every call so swapping
// the underlying connection (e.g. in tests) changes strategy immediately.
func (s *Store) Reserve(worker Worker, maxRunTime time.Duration) (*Job, error) {
	now := s.clock.Now()
	table := s.cfg.TableName()
	maxRunTime = MaxRunTime(s.cfg, maxRunTime)

	switch detectBackend(s.db) {
	case backendPostgres:
		return s.reservePostgres(table, now, worker, maxRunTime)
	case backendMySQL:
		return s.reserveMySQL(table, now, worker, maxRunTime)
	case backendMSSQL:
		return s.reserveMSSQL(table, now, worker, maxRunTime)
	default:
		return s.reserveFallback(table, now, worker, maxRunTime)
	}
}
