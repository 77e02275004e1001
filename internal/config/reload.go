// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mia-platform/logician/configurator"
	ilogger "github.com/mia-platform/logician/internal/logger"
	"github.com/mia-platform/logician/logger"
	"github.com/mia-platform/logician/warn"
)

// DefaultDebounce is the quiet time waited after the last file event before reloading.
const DefaultDebounce = 500 * time.Millisecond

// Loggers maps logger names to the configured loggers.
type Loggers map[string]logger.Logger

// Names returns the logger names in lexical order.
func (l Loggers) Names() []string {
	return slices.Sorted(maps.Keys(l))
}

// Holder keeps the loggers configured from a file and reconfigures them when the file
// changes. A failed reload keeps the previous loggers.
type Holder struct {
	path     string
	outputs  *Outputs
	warner   warn.Warner
	envOpts  []configurator.EnvOption
	log      ilogger.Logger
	debounce time.Duration

	lock    sync.RWMutex
	loggers Loggers
	configs []*LoggerConfig

	watcher *fsnotify.Watcher

	listenersLock sync.RWMutex
	listeners     []chan<- Loggers
}

// HolderOption customizes a Holder.
type HolderOption func(*Holder)

// WithDebounce changes the quiet time before an automatic reload.
func WithDebounce(debounce time.Duration) HolderOption {
	return func(h *Holder) {
		h.debounce = debounce
	}
}

// WithEnvOptions is passed to every environment lookup built by the holder.
func WithEnvOptions(opts ...configurator.EnvOption) HolderOption {
	return func(h *Holder) {
		h.envOpts = opts
	}
}

// NewHolder loads the loggers described by path.
func NewHolder(ctx context.Context, path string, outputs *Outputs, warner warn.Warner, opts ...HolderOption) (*Holder, error) {
	h := &Holder{
		path:     filepath.Clean(path),
		outputs:  outputs,
		warner:   warner,
		log:      ilogger.Named(ctx, "config"),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(h)
	}

	loggers, configs, err := h.load()
	if err != nil {
		return nil, err
	}
	h.loggers = loggers
	h.configs = configs
	return h, nil
}

// Get returns the logger called name.
func (h *Holder) Get(name string) (logger.Logger, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	log, found := h.loggers[name]
	return log, found
}

// Loggers returns a copy of the current loggers.
func (h *Holder) Loggers() Loggers {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return maps.Clone(h.loggers)
}

// Configs returns the configurations the current loggers were built from.
func (h *Holder) Configs() []*LoggerConfig {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return slices.Clone(h.configs)
}

// Reload parses the file again and swaps the loggers only if all of them are valid.
func (h *Holder) Reload(_ context.Context) error {
	h.log.Debug("reloading loggers", "path", h.path)

	loggers, configs, err := h.load()
	if err != nil {
		h.log.Error("reload failed, keeping the previous loggers", "path", h.path, "error", err)
		return err
	}

	h.lock.Lock()
	h.loggers = loggers
	h.configs = configs
	h.lock.Unlock()

	h.notifyListeners(loggers)
	h.log.Info("loggers reloaded", "path", h.path, "count", len(loggers))
	return nil
}

func (h *Holder) load() (Loggers, []*LoggerConfig, error) {
	configs, err := NewLoggerConfigsFromPath(h.path)
	if err != nil {
		return nil, nil, err
	}

	loggers := make(Loggers, len(configs))
	for _, config := range configs {
		log, err := config.Configure(h.outputs, h.warner, h.envOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("configuring logger %q: %w", config.Name, err)
		}
		loggers[config.Name] = log
	}
	return loggers, configs, nil
}

// StartWatcher reloads the loggers every time the file is written or recreated, until
// ctx is done or Stop is called. The parent directory is watched so a file replaced by a
// rename keeps being followed.
func (h *Holder) StartWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %q: %w", dir, err)
	}
	h.watcher = watcher

	h.log.Info("watching loggers file", "path", h.path)
	go h.watchLoop(ctx, watcher)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = watcher.Close()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != h.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(h.debounce, func() {
				_ = h.Reload(ctx)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.log.Error("loggers file watcher error", "error", err)
		}
	}
}

// Stop stops the file watcher, if running.
func (h *Holder) Stop() {
	if h.watcher != nil {
		_ = h.watcher.Close()
	}
}

// RegisterListener sends the new loggers to ch after every successful reload. Sends
// never block: a listener that is not ready misses the update.
func (h *Holder) RegisterListener(ch chan<- Loggers) {
	h.listenersLock.Lock()
	defer h.listenersLock.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notifyListeners(loggers Loggers) {
	h.listenersLock.RLock()
	defer h.listenersLock.RUnlock()

	for _, ch := range h.listeners {
		select {
		case ch <- maps.Clone(loggers):
		default:
		}
	}
}
