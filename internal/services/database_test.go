package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDatabaseFromDB(db), mock
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE t").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, "UPDATE t SET v = 1")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := db.WithTx(context.Background(), nil, func(ctx context.Context, tx DBTX) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		require.NotNil(t, recover(), "panic must propagate")
		require.NoError(t, mock.ExpectationsWereMet())
	}()

	_ = db.WithTx(context.Background(), nil, func(ctx context.Context, tx DBTX) error {
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	called := false
	err := db.WithTx(context.Background(), nil, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestRunMigrations_UsesEmbeddedRoot(t *testing.T) {
	db, _ := newMockDatabase(t)

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, RunMigrations(context.Background(), db.DB))
	assert.Equal(t, ".", gotDir)
}

func TestRunMigrations_PropagatesError(t *testing.T) {
	db, _ := newMockDatabase(t)

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("migrate failed")
	}

	assert.EqualError(t, RunMigrations(context.Background(), db.DB), "migrate failed")
}
