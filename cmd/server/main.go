package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayumi/capgen/internal/api"
	"github.com/ayumi/capgen/internal/config"
	"github.com/ayumi/capgen/internal/logger"
	"github.com/ayumi/capgen/internal/service"
)

func main() {
	// Initialize logger first so config failures are reported consistently
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Refuse to start without a usable model credential; a server that cannot
	// authenticate would fail every generation it accepts.
	if err := cfg.Validate(); err != nil {
		appLogger.WithError(err).Fatal("Invalid configuration")
	}

	// Initialize services
	modelClient := service.NewModelClient(&service.ModelConfig{
		Provider:    cfg.Model.Provider,
		Model:       cfg.Model.Name,
		APIKey:      cfg.Model.APIKey,
		BaseURL:     cfg.Model.BaseURL,
		MaxTokens:   cfg.Model.MaxTokens,
		Temperature: cfg.Model.Temperature,
		Timeout:     cfg.Model.Timeout(),
	})

	session := service.NewSession(time.Duration(cfg.Clipboard.ConfirmTTLMs) * time.Millisecond)
	generationService := service.NewGenerationService(modelClient, session, appLogger)

	appLogger.WithFields(logger.Fields{
		"model":    cfg.Model.Name,
		"base_url": cfg.Model.BaseURL,
	}).Info("Model client ready")

	// Setup router
	router := api.SetupRouter(generationService, cfg, appLogger)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
