package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/orion/config"
	"github.com/opd-ai/orion/events"
	"github.com/opd-ai/orion/extension"
	"github.com/opd-ai/orion/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const metricsNamespace = "orion"

func relayCmd() *cobra.Command {
	var listen, upstream string

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Relay clients to the upstream server",
		Long: `Accept clients, connect each to the upstream server and relay the
session through the event kernel until interrupted.

Flags override the matching ORION_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if upstream != "" {
				cfg.Upstream = upstream
			}

			logger, err := config.NewLogger(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRelay(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address clients connect to")
	cmd.Flags().StringVarP(&upstream, "upstream", "u", "", "server to relay to")

	return cmd
}

// runRelay serves until ctx is done, then unloads every extension.
func runRelay(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	kernel := events.NewKernel(
		events.WithLogger(logger),
		events.WithMetrics(events.NewMetrics(reg, metricsNamespace)),
	)

	loader := extension.NewLoader(kernel, logger)
	defer func() {
		if err := loader.UnloadAll(); err != nil {
			logger.WithFields(logrus.Fields{
				"function": "runRelay",
				"error":    err.Error(),
			}).Warn("Extension unload failed")
		}
	}()
	if err := loadBuiltins(loader, cfg.Extensions, logger); err != nil {
		return err
	}

	srv := session.NewServer(kernel, cfg.Upstream,
		session.WithLogger(logger),
		session.WithMetrics(session.NewMetrics(reg, metricsNamespace)),
		session.WithWriteTimeout(cfg.WriteTimeout),
	)

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Listen, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, ln)
	})

	if cfg.MetricsAddr != "" {
		hs := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           opsRouter(reg, srv.Slots()),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.WithFields(logrus.Fields{
				"function": "runRelay",
				"addr":     cfg.MetricsAddr,
			}).Info("Serving metrics")
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func loadBuiltins(loader *extension.Loader, names []string, logger logrus.FieldLogger) error {
	available := builtins(logger)
	for _, name := range names {
		if name == "" {
			continue
		}
		build, ok := available[name]
		if !ok {
			return fmt.Errorf("unknown extension %q", name)
		}
		if err := loader.Load(build()); err != nil {
			return err
		}
	}
	return nil
}
