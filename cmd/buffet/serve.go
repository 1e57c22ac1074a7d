package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"buffet/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(configFile *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the metrics server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return runServe(a)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "API server port")
	return cmd
}

func runServe(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.seedIfEmpty(ctx); err != nil {
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}

	if !a.cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := api.NewServer(a.store, a.buffets, a.planner, a.metrics, a.logger.Named("api"),
		api.WithAllowedOrigins(a.cfg.Server.AllowedOrigins))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler: srv.Router(),
	}

	errCh := make(chan error, 2)
	var metricsServer *http.Server
	if a.cfg.MetricsConfig.Enabled {
		metricsServer = startMetricsServer(a, errCh)
	}

	go func() {
		a.logger.Info("starting API server", zap.Int("port", a.cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("API server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
		a.logger.Error("server failed", zap.Error(serveErr))
	case <-ctx.Done():
	}

	a.logger.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("API server shutdown error", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("metrics server shutdown error", zap.Error(err))
		}
	}
	return serveErr
}

// startMetricsServer serves the collector in the background. Listener
// failures are sent to errCh.
func startMetricsServer(a *app, errCh chan<- error) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(a.cfg.MetricsConfig.Path, a.metrics.Handler())

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.MetricsConfig.Port),
		Handler: mux,
	}

	go func() {
		a.logger.Info("starting metrics server",
			zap.Int("port", a.cfg.MetricsConfig.Port),
			zap.String("path", a.cfg.MetricsConfig.Path))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
	}()
	return metricsServer
}
