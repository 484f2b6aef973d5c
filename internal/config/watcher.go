package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file when it changes on disk and
// delivers the result on Updates.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	updates  chan *Config
	trigger  chan struct{}
	debounce time.Duration
}

func NewWatcher(path string) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		path:     absPath,
		watcher:  fw,
		updates:  make(chan *Config, 1),
		trigger:  make(chan struct{}, 1),
		debounce: 250 * time.Millisecond,
	}, nil
}

// Updates yields reloaded configurations. Only the latest one is kept when
// the reader falls behind.
func (w *Watcher) Updates() <-chan *Config { return w.updates }

// Start watches the directory holding the file; editors often replace files
// instead of writing them in place.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config directory %s: %w", dir, err)
	}
	slog.Info("Watching configuration", "path", w.path)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				slog.Debug("Config change detected", "file", ev.Name, "op", ev.Op.String())
				select {
				case w.trigger <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			cfg, err := Load(w.path)
			if err != nil {
				slog.Warn("Config reload failed", "error", err)
				continue
			}
			w.publish(cfg)
		}
	}
}

func (w *Watcher) publish(cfg *Config) {
	for {
		select {
		case w.updates <- cfg:
			return
		default:
		}
		// drop the stale one
		select {
		case <-w.updates:
		default:
		}
	}
}
