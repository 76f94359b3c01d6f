package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horizon/internal/shared/config"
	"horizon/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize telemetry (if enabled)
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(context.Background(), cfg.Telemetry, os.Getenv("ENVIRONMENT"))
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Printf("Telemetry shutdown error: %v", err)
			}
		}()
	}

	// Wire dependencies
	deps := NewDependencies(cfg)

	// Build routes and start servers
	handler := SetupRoutes(deps, cfg)
	srv, redirectSrv := StartServers(NewServerConfigFromConfig(handler, cfg))

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	GracefulShutdown(srv, redirectSrv, 30*time.Second)
	return nil
}
