// Package db wires the GORM connection and migrations, mirroring the
// teacher's internal/db layer but generalized across the three SQL
// dialects the reservation engine distinguishes (postgres/mysql/sqlserver).
package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"

	"jobres/internal/auth"
	"jobres/internal/jobs"
)

// Connect opens a GORM connection using the dialect named by driver
// ("postgres", "mysql", or "sqlserver"), the set the reservation engine's
// detectBackend switch understands.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlserver":
		dialector = sqlserver.Open(dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

// AutoMigrateAndIndexes migrates the Job model into tableName (the
// configured <prefix>delayed_jobs table, so the same binary can run against
// several prefixes for test isolation) plus the admin surface's AdminUser
// table, and then creates table-named indexes on failed_at, singleton and
// locked_by, columns the Job struct tags also index.
func AutoMigrateAndIndexes(gdb *gorm.DB, tableName string) error {
	if err := gdb.Table(tableName).AutoMigrate(&jobs.Job{}); err != nil {
		return err
	}
	if err := gdb.AutoMigrate(&auth.AdminUser{}); err != nil {
		return err
	}

	stmts := []string{
		fmt.Sprintf(`create index if not exists idx_%s_failed_at on %s(failed_at);`, tableName, tableName),
		fmt.Sprintf(`create index if not exists idx_%s_singleton on %s(singleton);`, tableName, tableName),
		fmt.Sprintf(`create index if not exists idx_%s_locked_by on %s(locked_by);`, tableName, tableName),
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
