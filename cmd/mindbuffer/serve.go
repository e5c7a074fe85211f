package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/internal/cli"
	httpAdapter "github.com/aretw0/mindbuffer/pkg/adapters/http"
	"github.com/aretw0/mindbuffer/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the rescue flow, the archive and the parent zone as a JSON API, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		coach, err := cli.NewCoach(sigCtx, cfg, logger, mindbuffer.WithLifecycleHooks(metrics.Hooks()))
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(sigCtx))

		srv := &http.Server{
			Addr: cfg.HTTPAddr,
			Handler: httpAdapter.NewHandler(coach,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			),
			// Event streams end with the signal context.
			BaseContext: func(net.Listener) context.Context { return sigCtx },
			ReadTimeout: 30 * time.Second,
			IdleTimeout: 120 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", srv.Addr, "storage", cfg.Storage.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCtx.Done():
			logger.Info("shutting down", "signal", sigCtx.Signal())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides http_addr)")
}
