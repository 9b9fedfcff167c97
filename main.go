package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/belira/freight/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "freight",
	Short:   "Belira Freight - shipping quote and address lookup service",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	// Quote cache owns its cleanup sweep; stop it on shutdown.
	cache := initQuoteCache(cfg)
	defer cache.Stop()

	quotes := initQuoteService(cfg, cache, logger)
	resolver := initAddressResolver(cfg, logger)

	logger.Info("Starting Belira Freight",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Strings("rate_providers", quotes.Providers()),
		zap.Strings("address_providers", resolver.Providers()),
	)

	// Start HTTP server
	srv := server.New(server.Config{Port: cfg.Port}, quotes, resolver, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
