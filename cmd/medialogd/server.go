package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/medialog/internal/api/v1"
	"github.com/vmunix/medialog/internal/config"
	"github.com/vmunix/medialog/internal/library"
	"github.com/vmunix/medialog/internal/notify"
	"github.com/vmunix/medialog/internal/persist"
	"github.com/vmunix/medialog/internal/server"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// newProvider builds the persistence backend selected by config.
// The returned cleanup closes any underlying resources.
func newProvider(cfg *config.Config) (library.Provider, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case "memory":
		return persist.NewMemory(), noop, nil

	case "sqlite":
		if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, noop, fmt.Errorf("create db dir: %w", err)
			}
		}
		db, err := sql.Open("sqlite", cfg.Storage.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open db: %w", err)
		}
		provider, err := persist.NewSQLite(db)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return provider, func() { _ = db.Close() }, nil

	default:
		return persist.NewFile(cfg.Storage.Path), noop, nil
	}
}

func runServer(configPath string) error {
	// Load config; fall back to defaults when nothing is discovered
	var cfg *config.Config
	if configPath == "" {
		if discovered, err := config.Discover(); err == nil {
			configPath = discovered
		}
	}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if errs := loaded.Validate(); len(errs) > 0 {
			return &config.ConfigError{Path: configPath, Errors: errs}
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	provider, cleanup, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Notifications fan out to the log and to the API's recent-message feed
	bus := notify.NewBus(logger.With("component", "notify"))
	defer func() { _ = bus.Close() }()
	logNotifier := notify.NewLogNotifier(logger)
	notifier := notify.Func(func(level notify.Level, message string) {
		logNotifier.Notify(level, message)
		bus.Notify(level, message)
	})

	store := library.NewStore(provider, notifier, logger.With("component", "library"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Library.Seed {
		if err := store.Load(ctx); err != nil {
			return err
		}
	} else if err := store.LoadEmpty(ctx); err != nil {
		return err
	}

	// API
	mux := http.NewServeMux()
	api := v1.New(store, bus, version)
	api.RegisterRoutes(mux)

	runner := server.NewRunner(store, logRequests(mux, logger), server.Config{
		Addr:          fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		FlushInterval: 5 * time.Minute,
	}, logger.With("component", "server"))

	logger.Info("medialogd starting",
		"version", version,
		"backend", cfg.Storage.Backend,
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
	)
	return runner.Run(ctx)
}
