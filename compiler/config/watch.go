package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/syssam/tablegen/compiler/gen"
)

// DefaultDebounce is the quiet period a Watcher waits for before reloading.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the contexts of every reload, or the error that made
// the reload fail.
type ReloadFunc func(contexts map[string]*gen.Context, err error)

// Watcher reloads a configuration file when it or its .env file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a reload. Non-positive values
// keep the default.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the logger of the watcher.
func WithWatchLogger(l zerolog.Logger) WatchOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// NewWatcher watches the directory of the configuration file at path.
func NewWatcher(path string, opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
		watcher:  fw,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return w, nil
}

// Run calls fn after every settled change until ctx is done. Bursts of
// events within the debounce period cause a single reload.
func (w *Watcher) Run(ctx context.Context, fn ReloadFunc) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("config changed")
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			contexts, err := Load(w.path)
			if err != nil {
				w.logger.Error().Err(err).Str("file", w.path).Msg("reload failed")
			} else {
				w.logger.Info().Str("file", w.path).Int("contexts", len(contexts)).Msg("config reloaded")
			}
			fn(contexts, err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if base != filepath.Base(w.path) && base != EnvFile {
		return false
	}
	return isWriteOrCreate(event.Op)
}

func isWriteOrCreate(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create)
}
