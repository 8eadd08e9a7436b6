package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbdash/wbdash/internal/dbx"
	"github.com/wbdash/wbdash/internal/logging"
	"github.com/wbdash/wbdash/internal/server/config"
	"github.com/wbdash/wbdash/internal/server/repositories/analytics"
	"github.com/wbdash/wbdash/internal/server/repositories/repomanager"
	"github.com/wbdash/wbdash/internal/server/repositories/users"
	"github.com/wbdash/wbdash/internal/server/repositories/wblks"
)

type fakeRM struct {
	migrateErr error
	migrated   bool
}

func (m *fakeRM) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *fakeRM) Users(db dbx.DBTX) users.Repository { return users.NewPostgresRepository(db) }
func (m *fakeRM) WbLks(db dbx.DBTX) wblks.Repository { return wblks.NewPostgresRepository(db) }
func (m *fakeRM) Analytics(db dbx.DBTX) analytics.Repository {
	return analytics.NewPostgresRepository(db)
}

func stubDeps(t *testing.T, rm *fakeRM) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origRM, origLog := sqlOpen, newRepoManager, newLogger
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			return nil, errors.New("unexpected driver " + driver)
		}
		return db, nil
	}
	newRepoManager = func() repomanager.RepositoryManager { return rm }
	newLogger = func() logging.Logger { return logging.Discard() }
	t.Cleanup(func() {
		sqlOpen, newRepoManager, newLogger = origOpen, origRM, origLog
		db.Close()
	})
	return mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	return cfg
}

func TestNewApp_Migrates(t *testing.T) {
	rm := &fakeRM{}
	stubDeps(t, rm)

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	assert.True(t, rm.migrated)
	assert.NotNil(t, app.handler())
}

func TestNewApp_MigrationError(t *testing.T) {
	stubDeps(t, &fakeRM{migrateErr: errors.New("boom")})

	_, err := NewApp(context.Background(), testConfig())
	require.ErrorContains(t, err, "boom")
}

func TestRun_StopsOnCancel(t *testing.T) {
	mock := stubDeps(t, &fakeRM{})
	mock.ExpectPing()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("app exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestRun_BadAddress(t *testing.T) {
	stubDeps(t, &fakeRM{})
	cfg := testConfig()
	cfg.EndpointAddrHTTP = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	assert.Error(t, app.Run(context.Background()))
}
