package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/aqi-forecast/internal/config"
	"github.com/smartcity/aqi-forecast/internal/repository/postgres"
	"github.com/smartcity/aqi-forecast/internal/repository/sqlite"
)

func TestAwaitStop_Signal(t *testing.T) {
	listenErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	assert.NoError(t, awaitStop(listenErr, quit))
}

func TestAwaitStop_ListenerFailure(t *testing.T) {
	bindErr := errors.New("listen tcp :8080: bind: address already in use")
	listenErr := make(chan error, 1)
	listenErr <- bindErr

	err := awaitStop(listenErr, make(chan os.Signal))
	assert.ErrorIs(t, err, bindErr)
}

func TestAwaitStop_ListenerReturnsNil(t *testing.T) {
	listenErr := make(chan error, 1)
	listenErr <- nil

	err := awaitStop(listenErr, make(chan os.Signal))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener closed")
}

func TestOpenRepository(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		repo, closeRepo := openRepository(ctx, &config.Config{DBDriver: config.DriverNone}, log)
		defer closeRepo()
		assert.IsType(t, &postgres.MockRepository{}, repo)
	})

	t.Run("sqlite", func(t *testing.T) {
		repo, closeRepo := openRepository(ctx, &config.Config{DBDriver: config.DriverSQLite, DatabaseURL: ":memory:"}, log)
		assert.IsType(t, &sqlite.Repository{}, repo)
		assert.NoError(t, repo.Health(ctx))
		closeRepo()
		assert.Error(t, repo.Health(ctx))
	})
}
