package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "mesa-boost/internal/adapter/http"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the expiry scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), c)
		},
	}
}

// serve runs until ctx is cancelled by a signal, then stops the HTTP server
// gracefully and waits for the scheduler to exit.
func serve(ctx context.Context, c *cli) error {
	cfg, logger := c.cfg, c.logger

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	handler := httpadapter.NewHandler(a.boosts, a.ranking, logger, httpadapter.Options{
		WriteRPS:   cfg.HTTP.WriteRPS,
		WriteBurst: cfg.HTTP.WriteBurst,
		Metrics:    a.metrics.Handler(),
		Observer:   a.metrics,
		Ready:      a.ready,
	})
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server gracefully stopped")
		return nil
	})
	if cfg.Scheduler.Enabled {
		g.Go(func() error {
			return a.expirer.Run(gctx)
		})
	}
	return g.Wait()
}
