// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/kerorv/asyncrt/internal/dlog"
)

var log = dlog.New("config")

func levelFromString(s string) (lvl int, ok bool) {
	switch s {
	case "debug":
		return 4, true
	case "info":
		return 3, true
	case "warn":
		return 2, true
	case "error":
		return 1, true
	default:
		return 0, false
	}
}

// WatchLogLevel watches path for writes and re-applies its log_level
// field via apply whenever the file changes. Only the log level is
// hot-reloaded: wheel topology changes require a process restart, since
// wheel.Manager's slot counts are fixed at construction. The returned
// stop function closes the underlying watcher.
//
// Grounded in the fsnotify usage pattern from the Orizon example
// (watch, reload on every Write or Create event, apply on success, log
// and keep running on failure).
func WatchLogLevel(path string, apply func(level string)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.WARN("reload of %s failed, keeping current config: %s\n", path, err)
					continue
				}
				if _, ok := levelFromString(cfg.LogLevel); !ok {
					log.WARN("reload of %s: unknown log_level %q, ignoring\n", path, cfg.LogLevel)
					continue
				}
				log.INFO("reloaded log_level=%s from %s\n", cfg.LogLevel, path)
				apply(cfg.LogLevel)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WARN("watcher error on %s: %s\n", path, err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
