// Package watch notices when the backing file is edited by another program
// while a session is open.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Monitor watches a single file. The file's directory is watched rather
// than the file itself so that atomic replacements and re-creation are seen.
type Monitor struct {
	path    string
	logger  *slog.Logger
	changed atomic.Bool
	ready   chan struct{}
}

// New returns a Monitor for the file at path.
func New(path string, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return &Monitor{path: abs, logger: logger, ready: make(chan struct{})}
}

// Ready is closed once the watch is in place.
func (m *Monitor) Ready() <-chan struct{} { return m.ready }

// Changed reports whether the file changed since the previous call.
func (m *Monitor) Changed() bool {
	return m.changed.Swap(false)
}

// Run processes file system events until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: new watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(m.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	close(m.ready)
	m.logger.Debug("watch: started", slog.String("path", m.path))

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("watch: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != m.path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			m.changed.Store(true)
			m.logger.Debug("watch: file changed", slog.String("path", m.path), slog.String("op", ev.Op.String()))

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("watch: error", slog.String("error", watchErr.Error()))
		}
	}
}
