package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/inventory-manager/internal/auth"
	"github.com/rogerio-castellano/inventory-manager/internal/config"
	"github.com/rogerio-castellano/inventory-manager/internal/db"
	"github.com/rogerio-castellano/inventory-manager/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-manager/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-manager/internal/http/router"
	"github.com/rogerio-castellano/inventory-manager/internal/logging"
	"github.com/rogerio-castellano/inventory-manager/internal/repo"
	"go.uber.org/zap"
)

// @title Product Store API
// @version 1.0
// @description Reference product store used by the inventory console.
// @host localhost:5116
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "token" {
		printToken(cfg.Store.AuthSecret, os.Args[2:])
		return
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Store.DatabaseURL != "" {
		database, err := db.Connect(cfg.Store.DatabaseURL)
		if err != nil {
			logger.Fatal("could not connect to database", zap.Error(err))
		}
		defer database.Close()
		handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
		logger.Info("using postgres product repository")
	} else {
		handlers.SetProductRepo(repo.NewInMemoryProductRepository())
		logger.Info("using in-memory product repository")
	}

	opts := router.StoreOptions{AuthSecret: []byte(cfg.Store.AuthSecret)}
	if cfg.Store.RateLimit > 0 {
		opts.Limiter = rl.New(cfg.Store.RateLimit, cfg.Store.Burst)
		go opts.Limiter.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.Store.Addr,
		Handler:           router.NewStoreRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("product store running", zap.String("addr", cfg.Store.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// printToken writes a bearer token for the subject given on the command line.
func printToken(secret string, args []string) {
	if secret == "" {
		log.Fatal("store.auth_secret is not set")
	}
	subject := "console"
	if len(args) > 0 {
		subject = args[0]
	}

	token, err := auth.GenerateToken(subject, []byte(secret), 30*24*time.Hour)
	if err != nil {
		log.Fatalf("could not sign token: %v", err)
	}
	fmt.Println(token)
}
