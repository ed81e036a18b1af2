package catalog

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Manager serves a catalog from a file on disk and hot-reloads it when the
// file changes. Readers always see a complete catalog: reloads build a new
// one and swap it in atomically, and a reload failure keeps the current
// catalog in place.
type Manager struct {
	catalog  atomic.Pointer[Catalog]
	path     string
	watcher  *fsnotify.Watcher
	onChange []func(*Catalog)
	logger   *slog.Logger
}

// NewManager loads the model table at path and returns a manager serving it.
func NewManager(path string, logger *slog.Logger) (*Manager, error) {
	c, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		path:   path,
		logger: logger,
	}
	m.catalog.Store(c)

	return m, nil
}

// Catalog returns the current catalog. Safe for concurrent use; the
// returned catalog stays valid after later reloads.
func (m *Manager) Catalog() *Catalog {
	return m.catalog.Load()
}

// OnChange registers a callback invoked after each successful reload.
// Register callbacks before calling Watch.
func (m *Manager) OnChange(fn func(*Catalog)) {
	m.onChange = append(m.onChange, fn)
}

// Watch starts watching the model table file for changes. It debounces
// rapid writes and swaps the catalog atomically. Cancel ctx to stop.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher

	if err := watcher.Add(m.path); err != nil {
		_ = watcher.Close()
		return err
	}

	go m.watchLoop(ctx)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context) {
	const debounceDelay = 500 * time.Millisecond
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			_ = m.watcher.Close()
			return

		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					if err := m.Reload(); err != nil {
						m.logger.Error("failed to reload model table, keeping current",
							"path", m.path,
							"error", err,
						)
						return
					}
					m.logger.Info("model table reloaded", "models", m.Catalog().Len())
				})
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Error("model table watcher error", "error", err)
		}
	}
}

// Reload re-reads the model table from disk and swaps it in. The watcher
// calls this after debounced file events; tests and hosts may call it
// directly for a synchronous refresh.
func (m *Manager) Reload() error {
	c, err := LoadFile(m.path)
	if err != nil {
		return err
	}

	m.catalog.Store(c)

	for _, fn := range m.onChange {
		fn(c)
	}
	return nil
}

// Close stops the file watcher.
func (m *Manager) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
