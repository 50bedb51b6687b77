package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adas26/txfb/internal/server"
	"github.com/adas26/txfb/pkg/render"
	"github.com/adas26/txfb/pkg/renderers/html"
	"github.com/adas26/txfb/pkg/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the forms HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sqlite, err := store.OpenSQLite(ctx, cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer sqlite.Close()

		catalog := store.NewCatalog(sqlite, logger)

		registry := render.NewRegistry()
		htmlRenderer, err := html.New()
		if err != nil {
			return err
		}
		registry.MustRegister(htmlRenderer)

		srv := &http.Server{
			Addr:              cfg.Listen,
			Handler:           server.New(catalog, registry, cfg.DefaultRenderer, logger).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", zap.String("addr", cfg.Listen))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	},
}
