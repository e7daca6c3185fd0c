// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 100 * time.Millisecond

// Watch reloads the config file at path whenever it changes and passes the
// result to onChange. Invalid edits are logged and skipped; the previous
// config stays in effect. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file, since many editors
// save by writing a temp file and renaming it over the original.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	target := filepath.Clean(path)
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// Handle Write and Create events
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(watchDebounce)
			}

		case <-timer.C:
			cfg, err := LoadFromPath(path)
			if err != nil {
				log.Printf("config: ignoring edit to %s: %v", path, err)
				continue
			}
			if onChange != nil {
				onChange(cfg)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config: watch error: %v", err)
		}
	}
}
