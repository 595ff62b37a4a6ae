package jobs

import (
	"fmt"

	"gorm.io/gorm"
)

// BeforeFork closes every connection in the pool, for pre-forking worker
// managers that duplicate the process after DB init (spec.md §4.7).
func BeforeFork(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AfterFork re-establishes the connection in a freshly-forked child
// process. reopen must build a brand new *gorm.DB against the same
// dialector/DSN the parent connected with (e.g. a closure over
// db.Connect(driver, dsn)) — a *sql.DB that has had Close called on it is
// permanently closed, unlike an idle pooled connection, so AfterFork cannot
// just Ping the parent's old handle; it has to hand back a freshly opened
// one for the caller to start using in its place.
func AfterFork(reopen func() (*gorm.DB, error)) (*gorm.DB, error) {
	newDB, err := reopen()
	if err != nil {
		return nil, err
	}

	sqlDB, err := newDB.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("jobs: ping after fork: %w", err)
	}
	return newDB, nil
}
