package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"dailydiet/internal/config"
	"dailydiet/internal/database"
	"dailydiet/internal/logger"
	"dailydiet/internal/server"
)

func gracefulShutdown(apiServer *http.Server, drainTimeout time.Duration, done chan bool) {
	// Listen for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	slog.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight requests get drainTimeout to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
	done <- true
}

func main() {
	logger.SetDefault(logger.New())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	apiServer := server.New(cfg, db)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, cfg.ShutdownTimeout, done)

	slog.Info("Daily diet API listening", "port", cfg.Port)
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	slog.Info("Graceful shutdown complete.")
}
