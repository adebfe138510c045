// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "astrasync.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	watcher, err := NewWatcher(path, WithWatchInterval(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	reloaded := make(chan *Config, 1)
	watcher.OnChange(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher.Start(ctx)
	defer watcher.Stop()

	// mtime granularity can swallow immediate rewrites
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	_ = os.Chtimes(path, now, now)

	select {
	case cfg := <-reloaded:
		if cfg.Log.Level != "debug" {
			t.Errorf("Level = %q after reload", cfg.Log.Level)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never reloaded")
	}
}

func TestWatcherConfigAccessor(t *testing.T) {
	watcher, err := NewWatcher("")
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	cfg := watcher.Config()
	if cfg == nil || cfg.API.BaseURL == "" {
		t.Errorf("Config() = %+v", cfg)
	}
}

func TestWatcherSizeChangeTriggersReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "astrasync.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	watcher, err := NewWatcher(path, WithWatchInterval(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	// Same mtime, different size: size comparison must catch it.
	if err := os.WriteFile(path, []byte("log:\n  level: warning\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_ = os.Chtimes(path, watcher.modTime, watcher.modTime)

	if !watcher.fileChanged() {
		t.Error("fileChanged() = false after size change")
	}
}
