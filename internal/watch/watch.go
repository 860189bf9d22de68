// Package watch reloads physics tuning when the config file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/adboard"
	"github.com/phanxgames/adboard/internal/config"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reapplies the [physics] section of a config file whenever the file
// is written. Only physics is live; other sections need a restart.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	apply    func(adboard.PhysicsConfig)
	logger   *slog.Logger
	debounce time.Duration
}

// New watches the config file at path. apply receives each successfully
// reloaded tuning; Board.Retune is the usual target. The file's directory is
// watched so editors that replace the file on save are seen.
func New(path string, apply func(adboard.PhysicsConfig), logger *slog.Logger) (*Watcher, error) {
	if apply == nil {
		panic("watch: New called with nil apply func")
	}
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		fsw:      fsw,
		apply:    apply,
		logger:   logger.With("component", "watch"),
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce changes the settle delay. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending = true
			debounce.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)

		case <-debounce.C:
			if pending {
				pending = false
				w.Reload()
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Reload reads the file now and applies its physics section. Invalid files
// are logged and leave the current tuning in place.
func (w *Watcher) Reload() bool {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", "path", w.path, "err", err)
		return false
	}
	tuning, err := cfg.Physics.Tuning()
	if err != nil {
		w.logger.Warn("config reload rejected", "path", w.path, "err", err)
		return false
	}
	w.logger.Info("physics reloaded", "path", w.path, "model", tuning.Model)
	w.apply(tuning)
	return true
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
