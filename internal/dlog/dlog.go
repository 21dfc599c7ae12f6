// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package dlog is the logging facade shared by every package outside the
// core (lifetime, callback, wheel and corun never import it: the core
// never logs, by design). It wraps github.com/intuitivelabs/slog, the
// same logging dependency the teacher timer-wheel library itself carries,
// so the ambient stack stays on the pack's own logging library instead of
// reaching for the standard "log" package.
package dlog

import (
	"github.com/intuitivelabs/slog"
)

// Log is the package-wide leveled logger. Component packages that want a
// distinguishable prefix should use New instead of the bare package-level
// helpers below.
var Log = slog.Log{
	Level:  slog.LWARN,
	Prefix: "asyncrt: ",
}

// Logger is a component-scoped view of the package logger, returned by
// New, the same way wtimer would have scoped its DBG/ERR call sites per
// file if it needed distinguishable prefixes. It always reads the
// current value of the package-level Log.Level, so internal/config's
// hot reload of the log level is visible to every already-constructed
// Logger without them needing to be rebuilt.
type Logger struct {
	prefix string
}

// New returns a component-scoped Logger with its own prefix.
func New(component string) *Logger {
	return &Logger{prefix: component + ": "}
}

func (lg *Logger) log(lvl slog.LogLevel, f string, args ...interface{}) {
	Log.Logf(lvl, lg.prefix+f, args...)
}

func (lg *Logger) DBG(f string, args ...interface{})  { lg.log(slog.LDBG, f, args...) }
func (lg *Logger) INFO(f string, args ...interface{}) { lg.log(slog.LINFO, f, args...) }
func (lg *Logger) WARN(f string, args ...interface{}) { lg.log(slog.LWARN, f, args...) }
func (lg *Logger) ERR(f string, args ...interface{})  { lg.log(slog.LERR, f, args...) }
func (lg *Logger) BUG(f string, args ...interface{})  { lg.log(slog.LBUG, f, args...) }

func (lg *Logger) DBGon() bool  { return Log.Level >= slog.LDBG }
func (lg *Logger) WARNon() bool { return Log.Level >= slog.LWARN }
func (lg *Logger) ERRon() bool  { return Log.Level >= slog.LERR }

// SetLevel adjusts the global log level at runtime, used by
// internal/config's file-watch hot reload.
func SetLevel(lvl slog.LogLevel) {
	Log.Level = lvl
}

// LevelFromString maps the user-facing level names accepted in the YAML
// config ("debug", "info", "warn", "error") to slog's level constants, so
// cmd/asyncrtd can translate internal/config's reloaded level string into
// a SetLevel call.
func LevelFromString(s string) (slog.LogLevel, bool) {
	switch s {
	case "debug":
		return slog.LDBG, true
	case "info":
		return slog.LINFO, true
	case "warn":
		return slog.LWARN, true
	case "error":
		return slog.LERR, true
	default:
		return 0, false
	}
}

// DBG logs at debug level, mirroring wtimer's DBG() call sites.
func DBG(f string, args ...interface{}) { Log.Logf(slog.LDBG, f, args...) }

// INFO logs at info level.
func INFO(f string, args ...interface{}) { Log.Logf(slog.LINFO, f, args...) }

// WARN logs at warning level, mirroring wtimer's WARN() call sites.
func WARN(f string, args ...interface{}) { Log.Logf(slog.LWARN, f, args...) }

// ERR logs at error level, mirroring wtimer's ERR() call sites.
func ERR(f string, args ...interface{}) { Log.Logf(slog.LERR, f, args...) }

// BUG logs an internal-invariant-violation message, mirroring wtimer's
// BUG() call sites (a logged bug is not fatal, unlike PANIC).
func BUG(f string, args ...interface{}) { Log.Logf(slog.LBUG, f, args...) }

// PANIC logs at the highest level and panics, mirroring wtimer's PANIC()
// call sites used for unrecoverable internal consistency violations such
// as corrupted intrusive lists.
func PANIC(f string, args ...interface{}) {
	Log.Logf(slog.LCRIT, f, args...)
	panic(Log.Sprintf(f, args...))
}

// DBGon reports whether debug logging is currently enabled, so call sites
// can skip building expensive debug strings, the way wtimer's own DBGon()
// guards its DBG() calls.
func DBGon() bool { return Log.Level >= slog.LDBG }

// WARNon reports whether warning logging is currently enabled.
func WARNon() bool { return Log.Level >= slog.LWARN }

// ERRon reports whether error logging is currently enabled.
func ERRon() bool { return Log.Level >= slog.LERR }
