package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agora-dev/agora/internal/config"
	"github.com/agora-dev/agora/internal/logger"
	"github.com/agora-dev/agora/internal/router"
	"github.com/agora-dev/agora/internal/setup"
	"github.com/agora-dev/agora/internal/storage/pg"
)

const (
	defaultPort     = "8080"
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	var configFolder string
	var skipMigrations bool
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.BoolVar(&skipMigrations, "skip_migrations", false, "do not apply database migrations on start")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Setup(cfg.Public)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to setup dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	if !skipMigrations {
		if err := migrate(deps.Storage); err != nil {
			logger.Log.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := configureServer(router.New(ctx, deps))
	go func() {
		logger.Log.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", "error", err)
	}
}

func migrate(storage *pg.Storage) error {
	migrator, err := pg.NewMigrator(storage.DB())
	if err != nil {
		return err
	}
	return migrator.Upgrade()
}

func configureServer(handler http.Handler) *http.Server {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
