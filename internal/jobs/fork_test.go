package jobs_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobres/internal/jobs"
)

func TestBeforeFork_ClosesThePooledConnection(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, jobs.BeforeFork(gdb))

	// The underlying *sql.DB is now closed; any further use fails.
	underlying, err := gdb.DB()
	require.NoError(t, err)
	require.Error(t, underlying.Ping())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterFork_ReturnsFreshlyOpenedConnectionFromReopen(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)

	reopened, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	newDB, err := jobs.AfterFork(func() (*gorm.DB, error) {
		return reopened, nil
	})
	require.NoError(t, err)
	require.Same(t, reopened, newDB)
}

func TestAfterFork_PropagatesReopenError(t *testing.T) {
	wantErr := errors.New("dial failed")

	_, err := jobs.AfterFork(func() (*gorm.DB, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
}
