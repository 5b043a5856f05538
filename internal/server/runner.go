// Package server runs the HTTP surface and background upkeep.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/medialog/internal/library"
)

// Config for the server runner.
type Config struct {
	Addr          string
	FlushInterval time.Duration // 0 disables the periodic snapshot flush
}

// Runner manages the HTTP server and the periodic snapshot flusher.
type Runner struct {
	store   *library.Store
	handler http.Handler
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(store *library.Store, handler http.Handler, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:   store,
		handler: handler,
		config:  cfg,
		logger:  logger,
	}
}

// Run starts all components.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    r.config.Addr,
		Handler: r.handler,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", r.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if r.config.FlushInterval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(r.config.FlushInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := r.store.Flush(ctx); err != nil {
						// Best-effort; the next mutation flushes again.
						r.logger.Error("periodic flush failed", "error", err)
					}
				}
			}
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
