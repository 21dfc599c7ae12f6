// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package corun implements chained, lifetime-aware coroutine tasks: a
// Go translation of the teacher spirit's (intuitivelabs/wtimer-adjacent)
// single-goroutine cooperative model applied to
// original_source/cotask.{h,cpp}'s CoFrame/CoTask tree, using goroutines,
// channels and panic/recover in place of C++20 stackless coroutines.
//
// Like wheel.Manager, nothing in this package is safe for concurrent
// use from more than one goroutine at a time per chain.
package corun

import "github.com/kerorv/asyncrt/lifetime"

// Task is the Go translation of CoTask<T>: a lazily-started unit of
// chained, resumable work that eventually produces a T. Unlike the C++
// original, a Task's body runs to completion (or to an AwaitFuture
// suspension) as an ordinary Go call on whichever goroutine resumes it;
// there is no separate coroutine state machine, since the growable Go
// stack already gives nested Awaits the depth-first resume behaviour
// spec.md §5 requires.
type Task[T any] struct {
	host lifetime.Host
	body func(*Frame) T
}

// New binds an unbound (host-less) task body. The task can still be
// unwound if it is Awaited from within a chain whose root or an
// ancestor frame is host-bound and that host dies.
//
// T is the task's result type, not an argument: spec.md §4.5's "no
// pointer/reference arguments" discipline binds what a factory closure
// captures on entry, which this package never passes through a generic
// boundary the way callback.Bind's registered parameters do, so there is
// nothing here to check. A Task[*Foo] is legitimate.
func New[T any](body func(*Frame) T) Task[T] {
	return Task[T]{body: body}
}

// BindHost binds a task body to host: if host dies before the task's
// body returns, finalize on the task's own frame triggers a destroy-
// chain instead of returning the task's value to its caller.
func BindHost[T any](host lifetime.Host, body func(*Frame) T) Task[T] {
	return Task[T]{host: host, body: body}
}

// Await resumes t as a child of f and blocks -- on f's own goroutine,
// synchronously -- until t's body returns. This is the chained-coroutine
// case of spec.md §4.5: a CoTask awaiting another CoTask never needs a
// real suspension, so it never needs a second goroutine.
//
// Two resume boundaries are checked here, matching
// original_source/cotask.cpp's per-frame CoFrameBase::Resume guard: the
// child's own monitor (t's host may have died during its own body), and
// f's monitor (f's host may have died while t's body was running,
// before control returns into f's continuation). Either dead host
// unwinds the chain instead of resuming it.
func Await[T any](f *Frame, t Task[T]) T {
	child := f.child(t.host)
	v := t.body(child)
	child.finalize()
	f.finalize()
	return v
}

// Run executes t to completion on the calling goroutine with a fresh
// root frame, for callers that are not themselves inside a Task body
// (e.g. tests, or a one-shot fire-and-observe call site). It converts a
// destroy-chain unwind into ErrHostGone instead of letting the sentinel
// panic escape.
func Run[T any](t Task[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errChainCancelled); ok {
				err = ErrHostGone
				return
			}
			panic(r)
		}
	}()
	root := NewRootFrame()
	child := root.child(t.host)
	result = t.body(child)
	child.finalize()
	return result, nil
}
