package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericogr/ninja-arena/internal/api"
	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/logging"
	"github.com/ericogr/ninja-arena/internal/pacing"
	"github.com/ericogr/ninja-arena/internal/version"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	env := loadEnvOrExit()
	logging.Init(env.LogLevel)
	defer logging.Sync()

	cfg := loadConfigOrExit(env.ConfigPath)
	repo := createRepositoryOrExit(env.DBPath)
	arena := newArena(cfg, repo)

	sessions, err := api.NewSessions(env.SessionSecret, env.SessionTTL, env.SecureCookie)
	if err != nil {
		logging.Fatal("Failed to set up sessions", err, nil)
	}
	handler := api.NewHandler(arena, repo, sessions, pacing.New(pacing.Clock(), pacing.DefaultDelays()))

	router := gin.Default()
	handler.Register(router)

	addr := cfg.ServerAddress
	if env.Addr != "" {
		addr = env.Addr
	}
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, constants.LogFieldVersion: version.String()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return runSweeper(ctx, arena, env.BattleTTL)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logging.Fatal("Server stopped with error", err, nil)
	}
	logging.Info("Server stopped", nil)
}
