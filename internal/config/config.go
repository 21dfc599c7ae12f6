// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package config loads the YAML configuration file describing a
// runtime.Shell's wheel topology, tick cadence, log level and demo RESP
// listen target, and watches it for changes so the log level can be
// hot-reloaded without a restart.
//
// The library choice (gopkg.in/yaml.v3) follows the eth-rpc-monitor
// example's config loader; the terse, sparse comment style here follows
// the teacher timer-wheel library instead of that example's own heavier
// banner-comment convention.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level shape of the YAML configuration file.
type Config struct {
	// WheelSlots is the ordered per-level slot count passed to
	// wheel.NewManager / runtime.NewShell, e.g. [600, 60, 24] for a
	// 1-minute/1-hour/1-day hierarchy at a 100ms base tick.
	WheelSlots []uint32 `yaml:"wheel_slots"`

	// TickPeriodMS is the base tick period in milliseconds.
	TickPeriodMS int `yaml:"tick_period_ms"`

	// LogLevel is one of "debug", "info", "warn", "error". Hot-reloaded.
	LogLevel string `yaml:"log_level"`

	// RespListenAddr is the address cmd/asyncrtd's demo RESP echo server
	// binds, e.g. "127.0.0.1:6380". Empty binds an ephemeral port.
	RespListenAddr string `yaml:"resp_listen_addr"`
}

// Default returns the configuration cmd/asyncrtd falls back to when no
// file is given: a three-level 1-minute/1-hour/1-day wheel at 100ms,
// warn-level logging, demo server on an ephemeral port.
func Default() Config {
	return Config{
		WheelSlots:   []uint32{600, 60, 24},
		TickPeriodMS: 100,
		LogLevel:     "warn",
	}
}

// Load reads and parses path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if len(cfg.WheelSlots) == 0 {
		return Config{}, fmt.Errorf("config: %s: wheel_slots must not be empty", path)
	}
	return cfg, nil
}
