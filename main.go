package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/consensuslabs/reelstream/backend/internal/config"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
)

// @title           Reelstream API
// @version         1.0
// @description     API server for the Reelstream short video platform

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Bootstrap logger until the configured one is available
	bootLogger, err := logger.NewLogger(&logger.Config{Level: "debug", Format: "console", Output: "stdout"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.NewConfigService(bootLogger).Load(".")
	if err != nil {
		bootLogger.LogFatal(err, "Failed to load configuration")
	}

	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		bootLogger.LogFatal(err, "Failed to initialize application logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.LogFatal(err, "Failed to initialize application")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	select {
	case <-ctx.Done():
		appLogger.LogInfo("Received shutdown signal", nil)
	case err := <-errCh:
		if err != nil {
			appLogger.LogWarn("Server stopped", map[string]interface{}{"error": err.Error()})
		}
	}

	if err := app.Shutdown(); err != nil {
		appLogger.LogWarn("Error during shutdown", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
