package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/boards-dev/boards/internal/config"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/boards-dev/boards/internal/router"
	"github.com/boards-dev/boards/internal/setup"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()
	cfg := config.MustLoad(configFolder)

	logFile := logger.InitializeWithFile(cfg.Public.LogLevel, cfg.Public.LogJSON, cfg.Public.LogFile)
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		logger.Log.Error("failed to setup dependencies", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Log.Error("failed to release dependencies", "error", err)
		}
	}()

	server := &http.Server{
		Addr:         cfg.Public.HTTP.Addr,
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Public.HTTP.ReadTimeout,
		WriteTimeout: cfg.Public.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("server started", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
		}
		return
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Public.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", "error", err)
	}
}
