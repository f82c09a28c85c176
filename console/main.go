package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/inventory-manager/internal/client"
	"github.com/rogerio-castellano/inventory-manager/internal/config"
	"github.com/rogerio-castellano/inventory-manager/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-manager/internal/http/router"
	"github.com/rogerio-castellano/inventory-manager/internal/journal"
	"github.com/rogerio-castellano/inventory-manager/internal/logging"
	"github.com/rogerio-castellano/inventory-manager/internal/syncer"
	"go.uber.org/zap"
)

// @title Inventory Console API
// @version 1.0
// @description Product form and table kept in sync with the remote product store.
// @host localhost:8081
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var commitLog journal.Journal = journal.NewMemoryJournal(cfg.Redis.JournalMax)
	if cfg.Redis.Addr != "" {
		rdb, err := journal.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Fatal("could not connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		commitLog = journal.NewRedisJournal(rdb, cfg.Redis.JournalKey, cfg.Redis.JournalMax)
		logger.Info("recording commits in redis", zap.String("key", cfg.Redis.JournalKey))
	}

	store := client.New(cfg.Remote.BaseURL,
		client.WithTimeout(cfg.Remote.Timeout),
		client.WithToken(cfg.Remote.Token),
		client.WithRateLimit(cfg.Remote.RateLimit, cfg.Remote.Burst),
		client.WithConfirmations(cfg.Remote.UpdateConfirmation, cfg.Remote.DeleteConfirmation),
	)

	s := syncer.New(store,
		syncer.WithLogger(logger.Named("syncer")),
		syncer.WithJournal(commitLog),
		syncer.WithSingleFlight(cfg.Sync.SingleFlight),
		syncer.WithKeepDraftOnFailure(cfg.Sync.KeepDraftOnFailure),
	)
	if err := s.Load(ctx); err != nil {
		logger.Warn("initial product load failed, starting with an empty list", zap.Error(err))
	}

	handlers.SetSynchronizer(s)
	handlers.SetJournal(commitLog)

	srv := &http.Server{
		Addr:              cfg.Console.Addr,
		Handler:           router.NewConsoleRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("inventory console running",
		zap.String("addr", cfg.Console.Addr),
		zap.String("store", cfg.Remote.BaseURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
