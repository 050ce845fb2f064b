// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/gsearch-tui/internal/logging"
)

// debounce window for editors that write config files in several events
const watchDebounce = 250 * time.Millisecond

// Watch reloads the global configuration whenever the config file changes
// and invokes onReload with the new config. It blocks until ctx is done.
// Watch failures are logged and disable hot reload without affecting the
// running client.
func Watch(ctx context.Context, onReload func(*Config)) {
	path, err := ConfigPath()
	if err != nil {
		logging.Errorf("config watch: %v", err)
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Errorf("config watch: %v", err)
		return
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace the file and the
	// inode-level watch dies with the old inode.
	dir, err := ConfigDir()
	if err != nil {
		logging.Errorf("config watch: %v", err)
		return
	}
	if err := watcher.Add(dir); err != nil {
		logging.Errorf("config watch: %v", err)
		return
	}

	var timer *time.Timer
	reload := func() {
		cfg, err := Load()
		if err != nil {
			logging.Errorf("config reload: %v", err)
			return
		}
		SetGlobal(cfg)
		logging.Infof("config reloaded from %s", path)
		if onReload != nil {
			onReload(cfg)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Name != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Errorf("config watch: %v", err)
		}
	}
}
