package jobs_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobres/internal/clock"
	"jobres/internal/config"
	"jobres/internal/jobs"
)

func TestEnqueue_PayloadSingletonNameOverridesOption(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	store := jobs.NewStore(gdb, clock.New(), config.NewRuntimeConfig(config.Config{TablePrefix: "test_"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "test_delayed_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	callerSingleton := "caller-supplied"
	job, err := store.Enqueue(singletonPayload{Queue: "exports"}, jobs.EnqueueOptions{Singleton: &callerSingleton})
	require.NoError(t, err)
	require.NotNil(t, job.Singleton)
	require.Equal(t, "singleton:exports", *job.Singleton)
}

func TestEnqueue_NoSingletonCapabilityKeepsCallerOption(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	store := jobs.NewStore(gdb, clock.New(), config.NewRuntimeConfig(config.Config{TablePrefix: "test_"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "test_delayed_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	callerSingleton := "caller-supplied"
	job, err := store.Enqueue(greetPayload{Name: "ada"}, jobs.EnqueueOptions{Singleton: &callerSingleton})
	require.NoError(t, err)
	require.NotNil(t, job.Singleton)
	require.Equal(t, "caller-supplied", *job.Singleton)
}
