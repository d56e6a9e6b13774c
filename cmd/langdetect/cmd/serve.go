package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/pipeline"
	"github.com/MeKo-Tech/langdetect/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP language-detection API",
	Long: `Start an HTTP server that provides REST and websocket endpoints for
language detection.

The server provides the following endpoints:
  POST /v1/detect       - Detect the language of one text
  POST /v1/detect/batch - Detect the language of many texts
  GET  /v1/languages    - List the loaded languages
  GET  /v1/stream       - Streaming detection over a websocket
  GET  /healthz         - Health check endpoint
  GET  /metrics         - Prometheus metrics

Examples:
  langdetect serve
  langdetect serve --port 8080
  langdetect serve --host 0.0.0.0 --port 3000 --rate-limit 100`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		corsOrigin := cfg.Server.CORSOrigin
		if cmd.Flags().Changed("cors-origin") {
			corsOrigin, _ = cmd.Flags().GetString("cors-origin")
		}

		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}

		shutdownTimeout, _ := cmd.Flags().GetInt("shutdown-timeout")

		rateLimit := cfg.Server.RateLimitRPS
		if cmd.Flags().Changed("rate-limit") {
			rateLimit, _ = cmd.Flags().GetInt("rate-limit")
		}

		maxTextBytesPerDay := cfg.Server.MaxTextBytesPerDay
		if cmd.Flags().Changed("daily-text-quota") {
			quotaMB, _ := cmd.Flags().GetInt("daily-text-quota")
			maxTextBytesPerDay = int64(quotaMB) * 1024 * 1024
		}

		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		factory, err := loadFactory(cfg)
		if err != nil {
			return err
		}

		pCfg := pipeline.DefaultConfig()
		pCfg.Detector.Alpha = cfg.Detector.Alpha
		if cfg.Detector.MaxTextLength > 0 {
			pCfg.Detector.MaxTextLength = cfg.Detector.MaxTextLength
		}
		if cfg.Batch.Workers > 0 {
			pCfg.Parallel.MaxWorkers = cfg.Batch.Workers
		}

		serverConfig := server.Config{
			Host:               host,
			Port:               port,
			CORSOrigin:         corsOrigin,
			TimeoutSec:         timeout,
			RateLimitRPS:       rateLimit,
			MaxTextBytesPerDay: maxTextBytesPerDay,
			PipelineConfig:     pCfg,
		}

		srv, err := server.NewServer(factory, serverConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}
		defer func() { _ = srv.Close() }()

		mux := http.NewServeMux()
		srv.SetupRoutes(mux)

		httpServer := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       time.Duration(timeout) * time.Second,
			WriteTimeout:      time.Duration(timeout) * time.Second,
		}

		go func() {
			slog.Info("Starting language-detection server", "host", host, "port", port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("Context cancelled, initiating shutdown")
		}

		slog.Info("Starting graceful shutdown", "timeout", fmt.Sprintf("%ds", shutdownTimeout))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
		defer shutdownCancel()

		slog.Info("Shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		} else {
			slog.Info("HTTP server shutdown completed")
		}

		slog.Info("Cleaning up server resources")
		if err := srv.Close(); err != nil {
			slog.Error("Server cleanup error", "error", err)
		} else {
			slog.Info("Server cleanup completed")
		}

		slog.Info("Graceful shutdown completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
	serveCmd.Flags().Int("rate-limit", 0, "requests per minute per client (0 disables rate limiting)")
	serveCmd.Flags().Int("daily-text-quota", 0, "megabytes of request text a client may submit per day (when unset, the config value is used)")
}

// GetServeCommand returns the serve command for testing purposes.
func GetServeCommand() *cobra.Command {
	return serveCmd
}
