// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package corun

import (
	"sync"

	"github.com/kerorv/asyncrt/lifetime"
)

// Frame is the Go stand-in for CoFrameBase: the bookkeeping a running
// Task carries while it is part of a chain of nested Await calls. It is
// opaque to callers beyond the Await/AwaitFuture functions, matching
// spec.md §4.5's "no dynamic dispatch on the frame shape beyond a sum
// over {no_value, value<T>}".
//
// A Frame is never safe to retain past the Task it belongs to, and must
// only ever be touched from the single goroutine driving its chain.
type Frame struct {
	prev    *Frame
	monitor lifetime.Monitor
	gate    *gateSignal
}

// gateSignal lets Spawn's caller learn, exactly once, that the spawned
// chain has either reached its first AwaitFuture suspension or run to
// completion without ever suspending -- the two events that bound how
// long Spawn's synchronous prefix may run.
type gateSignal struct {
	once sync.Once
	ch   chan struct{}
}

func newGateSignal() *gateSignal {
	return &gateSignal{ch: make(chan struct{})}
}

func (g *gateSignal) open() {
	if g == nil {
		return
	}
	g.once.Do(func() { close(g.ch) })
}

// NewRootFrame returns a frame with no host binding, for a Task chain
// that is never torn down by a CallbackHost dying (e.g. the outermost
// frame of a standalone background job).
func NewRootFrame() *Frame {
	return &Frame{}
}

// NewFrame returns a frame bound to host: if host dies (its Tracker.Close
// is called) before this frame's Task completes, the whole chain waiting
// on it is unwound instead of resumed, per spec.md §4.5 "Final step".
func NewFrame(host lifetime.Host) *Frame {
	return &Frame{monitor: host.Monitor()}
}

// finalize runs the spec.md §4.5 "final step" check: if this frame is
// host-bound and that host died while the frame's body was running, the
// chain is cancelled instead of resumed. It must be called exactly once,
// right after a frame's body function returns, before its result is
// handed to whatever is waiting on it.
func (f *Frame) finalize() {
	if f.monitor.IsValid() && !f.monitor.IsAlive() {
		panic(errChainCancelled{})
	}
}

// child builds the next frame in the chain, via NewRootFrame or
// NewFrame depending on whether host is given, then attaches it to
// f's own chain (its prev link and its Spawn gate, if any). A frame
// whose host is already dead is never resumed into: the chain is
// cancelled before the task's body runs.
func (f *Frame) child(host lifetime.Host) *Frame {
	var c *Frame
	if host != nil {
		c = NewFrame(host)
	} else {
		c = NewRootFrame()
	}
	c.prev = f
	c.gate = f.gate
	if c.monitor.IsValid() && !c.monitor.IsAlive() {
		panic(errChainCancelled{})
	}
	return c
}
