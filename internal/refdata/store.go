package refdata

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 500 * time.Millisecond

// Store holds the current reference-data snapshot. Readers get one consistent
// immutable Tables per request; Reload swaps the whole snapshot atomically, so
// the tables themselves are never mutated in place.
type Store struct {
	tables atomic.Pointer[Tables]
	dir    string
	logger *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	watcher *fsnotify.Watcher
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a logger for reload events.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store serving t. dir is the data directory used for
// reloads; empty means built-in defaults only (reload and watch are no-ops).
func NewStore(t *Tables, dir string, opts ...StoreOption) *Store {
	s := &Store{dir: dir}
	s.tables.Store(t)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the current snapshot.
func (s *Store) Tables() *Tables {
	return s.tables.Load()
}

// Reload rebuilds the snapshot from the data directory and swaps it in.
// On validation failure the previous snapshot stays live.
func (s *Store) Reload() error {
	if s.dir == "" {
		return nil
	}
	t, err := LoadTables(s.dir)
	if err != nil {
		return err
	}
	s.tables.Store(t)
	return nil
}

// Watch reloads the snapshot when files in the data directory change.
// It runs until ctx is cancelled. A snapshot that fails validation is logged
// and discarded; requests keep seeing the previous one.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return err
	}
	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if filepath.Ext(ev.Name) != ".yaml" && filepath.Ext(ev.Name) != ".yml" {
					continue
				}
				s.debounceReload(ev.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if err != nil && s.logger != nil {
					s.logger.Debug("refdata watcher error", zap.Error(err))
				}
			}
		}
	}()
	return nil
}

func (s *Store) debounceReload(changed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(reloadDebounce, func() {
		if err := s.Reload(); err != nil {
			if s.logger != nil {
				s.logger.Warn("reference data reload rejected, keeping previous snapshot",
					zap.String("changed", changed), zap.Error(err))
			}
			return
		}
		if s.logger != nil {
			s.logger.Info("reference data reloaded", zap.String("changed", changed))
		}
	})
}
