package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/halemd30/Bookmarks-server/internal/auth"
	"github.com/halemd30/Bookmarks-server/internal/build"
	"github.com/halemd30/Bookmarks-server/internal/config"
	"github.com/halemd30/Bookmarks-server/internal/handler"
	"github.com/halemd30/Bookmarks-server/internal/logger"
	"github.com/halemd30/Bookmarks-server/internal/metrics"
	"github.com/halemd30/Bookmarks-server/internal/mw"
	"github.com/halemd30/Bookmarks-server/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := openMigrated(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bookmarks := store.NewBookmarkStore(database)
			if n, err := bookmarks.Count(ctx); err == nil {
				metrics.BookmarksTotal.Set(float64(n))
			}

			var bearer *auth.BearerTokenMiddleware
			if cfg.APIToken != "" {
				bearer = auth.NewBearerTokenMiddleware(cfg.APIToken)
			} else {
				log.Warn("BOOKMARKS_API_TOKEN is empty, /api requests are not authenticated")
			}

			router := handler.NewRouter(handler.Deps{
				DB:             database,
				Bookmarks:      bookmarks,
				BearerAuth:     bearer,
				Logger:         log,
				RequestTimeout: cfg.HTTP.RequestTimeout,
				RateLimit: mw.RateLimitConfig{
					PerSecond: cfg.HTTP.RateLimit,
					Burst:     cfg.HTTP.RateBurst,
				},
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				IdleTimeout:       time.Minute,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening",
					logger.String("addr", cfg.HTTP.Addr),
					logger.String("version", build.String()),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down", logger.Duration("timeout", cfg.HTTP.ShutdownTimeout))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
