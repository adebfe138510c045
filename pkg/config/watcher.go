// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher polls a single configuration file and rebuilds the Config
// when it changes. The SDK is a library, so the watcher stays a plain
// mtime poll rather than pulling in an fs-notification dependency.
type Watcher struct {
	mu        sync.RWMutex
	path      string
	interval  time.Duration
	modTime   time.Time
	size      int64
	config    *Config
	listeners []func(*Config)
	stopCh    chan struct{}
	doneCh    chan struct{}
	logger    *slog.Logger
}

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets the polling interval.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithWatchLogger sets the logger for the watcher.
func WithWatchLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher builds a watcher for the configuration file at path and
// loads the initial Config from it.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		interval: 1 * time.Second,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if info, err := os.Stat(path); err == nil {
		w.modTime = info.ModTime()
		w.size = info.Size()
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	w.config = cfg

	return w, nil
}

// OnChange registers a callback invoked with each reloaded Config.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Config returns the most recently loaded configuration.
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// Start begins polling. The watcher stops when ctx is done or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) {
	go w.poll(ctx)
}

// Stop halts polling and waits for the poll goroutine to exit.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) poll(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.fileChanged() {
				w.reload()
			}
		}
	}
}

// fileChanged compares mtime and size against the last observation.
// A missing file is not a change; the last good Config stays active.
func (w *Watcher) fileChanged() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if info.ModTime().After(w.modTime) || info.Size() != w.size {
		w.modTime = info.ModTime()
		w.size = info.Size()
		return true
	}
	return false
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Error("config reload failed, keeping previous", "path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	w.config = cfg
	listeners := make([]func(*Config), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.path)

	for _, fn := range listeners {
		fn(cfg)
	}
}
