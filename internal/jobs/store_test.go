package jobs_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobres/internal/clock"
	"jobres/internal/config"
	"jobres/internal/jobs"
)

func newMockedStore(t *testing.T) (*jobs.Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	clk := clock.New()
	cfg := config.NewRuntimeConfig(config.Config{TablePrefix: "test_"})

	return jobs.NewStore(gdb, clk, cfg), mock
}

func TestStore_Save_DefaultsRunAtWhenZero(t *testing.T) {
	store, mock := newMockedStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "test_delayed_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	j := &jobs.Job{Handler: `{"name":"ada"}`}
	require.NoError(t, store.Save(j))
	require.False(t, j.RunAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Save_PreservesExplicitRunAt(t *testing.T) {
	store, mock := newMockedStore(t)

	runAt := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "test_delayed_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	j := &jobs.Job{Handler: `{"name":"ada"}`, RunAt: runAt}
	require.NoError(t, store.Save(j))
	require.Equal(t, runAt, j.RunAt)
}

func TestStore_ClearLocks_NullsMatchingLockColumns(t *testing.T) {
	store, mock := newMockedStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "test_delayed_jobs" SET`).
		WithArgs(nil, nil, "worker.1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, store.ClearLocks("worker.1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Destroy_SkipsSiblingCleanupOnDeserializationFailure(t *testing.T) {
	store, mock := newMockedStore(t)

	singleton := "newsletter:42"
	j := &jobs.Job{ID: 5, Handler: "not json", Singleton: &singleton}

	// No sibling-cleanup DELETE is expected: only the row's own delete.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "test_delayed_jobs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var dst struct {
		Foo string `json:"foo"`
	}
	require.NoError(t, store.Destroy(j, &dst))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Destroy_RunsSiblingCleanupWithNilDst(t *testing.T) {
	store, mock := newMockedStore(t)

	singleton := "newsletter:42"
	j := &jobs.Job{ID: 5, Handler: `{"foo":"bar"}`, Singleton: &singleton}

	// Real call sites (worker loop, admin DELETE handler) pass dst=nil; I4's
	// sibling cleanup must still fire whenever the singleton decodes fine.
	// Each Delete call is its own GORM-managed transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "test_delayed_jobs" WHERE singleton`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "test_delayed_jobs" WHERE id`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Destroy(j, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
