package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/raw-feed-planner/internal/config"
	"example.com/raw-feed-planner/internal/database"
	"example.com/raw-feed-planner/internal/server"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	db, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		logger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	e := server.New(cfg, logger, db)
	httpServer := server.NewHTTPServer(cfg.Server, e)

	go func() {
		logger.Info("listening", slog.String("addr", httpServer.Addr))
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
	}
}

// ensureEnvFile подхватывает .env из текущей или родительской директории,
// если ENV_FILE не задан явно.
func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	for _, candidate := range []string{".env", "../.env"} {
		if _, err := os.Stat(candidate); err == nil {
			_ = os.Setenv("ENV_FILE", candidate)
			return
		}
	}
}
