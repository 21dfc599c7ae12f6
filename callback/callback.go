// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package callback implements a lifetime-gated, invocable callback type:
// a function plus an optional lifetime.Monitor. Invoking a Callback whose
// monitor reports its owner dead is a silent no-op, which is what lets
// timers and coroutine frames hold onto callbacks that may outlive the
// object that registered them without risking a use-after-free.
//
// This replaces the original source's Callback<Signature> / MakeCallback
// / MakeCallbackEx template machinery: Go closures already capture
// pre-bound arguments for free, so there is no need for the
// std::bind/integer_sequence plumbing callback.h relied on.
package callback

import "github.com/kerorv/asyncrt/lifetime"

// Callback holds a callable of one argument plus an optional monitor.
// Most of this runtime's uses are single-argument (wheel.TimerID); extra
// context should be captured by closing over it when building the
// wrapped func(T), which is the idiomatic Go substitute for the original
// C++ pre-bound-argument feature.
type Callback[T any] struct {
	fn      func(T)
	monitor lifetime.Monitor
}

// Bind wraps a plain function with no associated lifetime: invocation is
// never gated on a monitor, matching "absent monitor never gates
// invocation" from spec.md.
func Bind[T any](fn func(T)) Callback[T] {
	assertNoPointerArg[T]()
	return Callback[T]{fn: fn}
}

// BindHost wraps a member-function-shaped callback anchored to host's
// lifetime: invocation is skipped once host.Monitor() reports dead. host
// is the one permitted pointer-shaped argument (the receiver); T must
// still be a value type.
func BindHost[H lifetime.Host, T any](host H, fn func(H, T)) Callback[T] {
	assertNoPointerArg[T]()
	m := host.Monitor()
	return Callback[T]{
		fn:      func(v T) { fn(host, v) },
		monitor: m,
	}
}

// Invoke runs the bound callable with v, unless no callable is bound or
// the bound monitor reports the owner dead.
func (c Callback[T]) Invoke(v T) {
	if c.fn == nil {
		return
	}
	if c.monitor.IsValid() && !c.monitor.IsAlive() {
		return
	}
	c.fn(v)
}

// IsBound reports whether c wraps a callable at all (the zero-value
// Callback is unbound and Invoke on it is a no-op).
func (c Callback[T]) IsBound() bool {
	return c.fn != nil
}
