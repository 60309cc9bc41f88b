package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/convoapp/convo/config"
	"github.com/convoapp/convo/internal/logging"
	store "github.com/convoapp/convo/internal/repository"
	"github.com/convoapp/convo/internal/service"
	v1 "github.com/convoapp/convo/internal/transport/http/v1"
	"github.com/convoapp/convo/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logs := logging.NewRecorder(logger)

	logger.Info("starting conversation service",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("database", cfg.DatabaseURL))
	if cfg.APIKey == "" {
		logger.Warn("API_KEY is not set; all mutating operations will be rejected")
	}

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize store", zap.Error(err))
	}
	defer db.Close()

	// Initialize auth policy engine
	ctx := context.Background()
	authPolicy, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		logger.Fatal("failed to initialize policy engine", zap.Error(err))
	}

	// Initialize service and handler
	svc := service.New(db, cfg, logs)
	h := v1.NewHandler(svc, authPolicy, cfg, logs)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = v1.ErrorHandler(logs)

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("conversation service started", zap.Int("http_port", cfg.HTTPPort))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down conversation service")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server gracefully", zap.Error(err))
	}

	logger.Info("conversation service stopped")
}
