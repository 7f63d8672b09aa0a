// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/starford/carscout/internal/csvfile"
	"github.com/starford/carscout/internal/session"
	"github.com/starford/carscout/internal/storage"
	"github.com/starford/carscout/internal/view"
	"github.com/starford/carscout/internal/watch"
)

// Run starts an interactive session with the given options and returns
// once the user has saved and exited.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		in:     os.Stdin,
		out:    os.Stdout,
		logOut: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Logs go to stderr; stdout carries the session.
	logger := newLogger(cfg.App, app.logOut)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("data_path", cfg.Data.Path),
		slog.String("currency", cfg.Data.Currency),
		slog.Bool("watch", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	dataPath, err := filepath.Abs(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("resolve data path: %w", err)
	}

	// Initialize storage.
	store, err := storage.NewFS(filepath.Dir(dataPath))
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	logger.Debug("Storage initialized", slog.String("data_dir", store.Root()))
	file := csvfile.New(store, filepath.Base(dataPath), logger)

	v := view.New(app.out, cfg.Data.Currency)
	v.Banner()

	inv, err := file.Load()
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	v.Info(fmt.Sprintf("Loaded %d cars from %s.", inv.Len(), file.Name()))

	sessOpts := []session.Option{
		session.WithLogger(logger),
		session.WithFileName(file.Name()),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Watch.Enabled {
		watchPath, err := file.Path()
		if err != nil {
			return fmt.Errorf("resolve watch path: %w", err)
		}
		mon := watch.New(watchPath, logger)
		sessOpts = append(sessOpts, session.WithChangeNotifier(mon))
		g.Go(func() error {
			if err := mon.Run(gCtx); err != nil {
				logger.Warn("change monitor disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	sess := session.New(inv, file, app.in, v, sessOpts...)
	g.Go(func() error {
		defer cancel()
		return sess.Run(gCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Session finished", slog.Int("records", inv.Len()))
	return nil
}

func newLogger(cfg ApplicationConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
