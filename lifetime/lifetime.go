// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package lifetime implements a weak liveness tracker for objects that
// register callbacks which may outlive them ("CallbackHosts"). It is the
// L0 layer of the runtime: Callback and CoFrame are both built on top of
// the Monitor type defined here.
//
// The design mirrors async::LifeTimeTracker / async::Monitor from the
// original source almost exactly, translated from a shared heap state
// with a refcount + dead bit into a generation counter, since Go has no
// destructor to hook the "owner died" transition into — a Tracker must be
// explicitly retired by calling Close.
//
// Tracker and Monitor operations are infallible and are not safe for
// concurrent use: they are intended to run on a single event-loop
// goroutine, exactly like wtimer's own non-atomic timerLst operations.
package lifetime

// state is the heap-resident shared state a Tracker and all Monitors
// copied from it observe. Bumping gen makes every Monitor taken before
// the bump report dead; the dead flag makes Monitors taken after Close
// report dead too. No refcount is needed at all (copies are just as
// cheap as reading an int).
type state struct {
	gen  uint64
	dead bool
}

// Tracker is embedded by value in any object that wants to hand out
// liveness-tracking Monitors ("CallbackHosts" in spec terms). The zero
// value is usable.
type Tracker struct {
	s *state
}

// Host is the structural contract a CallbackHost satisfies: anything that
// can produce a Monitor for itself. Embedding a Tracker and exposing
// Monitor() is enough; there is no base class requirement as in the
// original C++ design.
type Host interface {
	Monitor() Monitor
}

// Monitor reports, at invocation time, whether its Tracker's owner is
// still alive. The zero value is the "absent" monitor: IsValid reports
// false and Callback/corun treat it as "no tracking" (never gates
// invocation), matching spec.md's three observable states.
type Monitor struct {
	s   *state
	gen uint64
}

func (t *Tracker) lazyInit() {
	if t.s == nil {
		t.s = &state{}
	}
}

// Monitor returns a new liveness handle tracking t's owner.
func (t *Tracker) Monitor() Monitor {
	t.lazyInit()
	return Monitor{s: t.s, gen: t.s.gen}
}

// Close retires the tracker: every Monitor taken from it, past or future,
// reports dead from this point on. This is the explicit stand-in for the
// C++ LifeTimeTracker destructor — Go has no destructors, so the owning
// type must call Close from its own teardown path (e.g. a Shutdown or
// Close method of its own).
//
// Close is idempotent and safe to call on a zero-value Tracker that never
// handed out a Monitor.
func (t *Tracker) Close() {
	t.lazyInit()
	t.s.dead = true
	t.s.gen++
}

// IsValid reports whether m tracks an actual Tracker (false only for the
// zero-value Monitor).
func (m Monitor) IsValid() bool {
	return m.s != nil
}

// IsAlive reports whether m's owner is still alive. An absent monitor
// (IsValid() == false) is never "alive" in the strict sense, but callers
// should check IsValid first: spec.md's contract is that an absent
// monitor never gates invocation at all, regardless of IsAlive.
func (m Monitor) IsAlive() bool {
	return m.s != nil && !m.s.dead && m.s.gen == m.gen
}
