package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/filestruct/filestruct/pkg/config"
	"github.com/filestruct/filestruct/pkg/server"
	"github.com/filestruct/filestruct/pkg/telemetry"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the file-structure HTTP API",
	Long: `Start an HTTP server exposing the file-structure operations:
adding and removing directories and files, saving and loading the
persisted JSON document, and rendering the markdown report.`,
	RunE: runServe,
}

func init() {
	viper.AutomaticEnv()
	// Replace . with _ in env var names (e.g., server.port becomes SERVER_PORT)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	rootCmd.AddCommand(serveCmd)

	// Serve-specific flags
	serveCmd.Flags().IntP("port", "p", 8000, "Port to listen on")
	serveCmd.Flags().String("session-api-key", "", "API key for session authentication")
	serveCmd.Flags().Bool("enable-telemetry", false, "Enable OpenTelemetry tracing")
	serveCmd.Flags().String("otel-endpoint", "", "OpenTelemetry endpoint (if empty, uses auto-export)")

	// Bind flags to viper
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.session_api_key", serveCmd.Flags().Lookup("session-api-key"))
	_ = viper.BindPFlag("telemetry.enabled", serveCmd.Flags().Lookup("enable-telemetry"))
	_ = viper.BindPFlag("telemetry.endpoint", serveCmd.Flags().Lookup("otel-endpoint"))
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	logger.Info("Starting filestruct server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize telemetry if enabled
	if cfg.Telemetry.Enabled {
		logger.Info("Initializing OpenTelemetry")
		cleanup, err := telemetry.Initialize(cfg.Telemetry, logger)
		if err != nil {
			logger.Warnf("Failed to initialize telemetry: %v", err)
		} else {
			defer cleanup()
		}
	}

	// Create and start server
	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %d", cfg.Server.Port)
		serverErrors <- srv.Start()
	}()

	// Wait for interrupt signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-interrupt:
		logger.Infof("Received signal %v, shutting down...", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("Server shutdown error: %v", err)
			return err
		}

		logger.Info("Server stopped gracefully")
		return nil
	}
}
