// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package corun

import (
	"testing"

	"github.com/kerorv/asyncrt/lifetime"
)

type fakeHost struct {
	lifetime.Tracker
}

func TestRunSimpleTask(t *testing.T) {
	task := New(func(f *Frame) int { return 42 })
	v, err := Run(task)
	if err != nil {
		t.Fatalf("Run: unexpected error %s\n", err)
	}
	if v != 42 {
		t.Fatalf("Run: got %d, want 42\n", v)
	}
}

// S6 - a chain of nested Awaits resumes depth-first, synchronously.
func TestChainedAwait(t *testing.T) {
	leaf := New(func(f *Frame) int { return 1 })
	mid := New(func(f *Frame) int { return Await(f, leaf) + 1 })
	root := New(func(f *Frame) int { return Await(f, mid) + 1 })

	v, err := Run(root)
	if err != nil {
		t.Fatalf("Run: unexpected error %s\n", err)
	}
	if v != 3 {
		t.Fatalf("chained await: got %d, want 3\n", v)
	}
}

func TestAwaitFutureSuspendsAndResumes(t *testing.T) {
	fut := NewFuture[int]()
	result := Spawn(func(f *Frame) Task[int] {
		return New(func(f *Frame) int {
			return AwaitFuture(f, fut) + 100
		})
	})

	fut.Fulfill(5)
	v := <-result.ch
	if v != 105 {
		t.Fatalf("AwaitFuture: got %d, want 105\n", v)
	}
}

func TestSpawnUnblocksOnImmediateCompletion(t *testing.T) {
	result := Spawn(func(f *Frame) Task[int] {
		return New(func(f *Frame) int { return 7 })
	})
	v := <-result.ch
	if v != 7 {
		t.Fatalf("Spawn without suspension: got %d, want 7\n", v)
	}
}

// property 6 / destroy-chain: a dead host unwinds the whole chain
// instead of resuming it, and never invokes the completion value.
func TestDestroyChainOnDeadHost(t *testing.T) {
	h := &fakeHost{}
	leaf := BindHost[int](h, func(f *Frame) int { return 9 })

	h.Close() // host dies before the chain is even resumed

	_, err := Run(leaf)
	if err != ErrHostGone {
		t.Fatalf("expected ErrHostGone, got %v\n", err)
	}
}

func TestDestroyChainUnwindsNestedAwaits(t *testing.T) {
	h := &fakeHost{}
	reached := false

	leaf := BindHost[int](h, func(f *Frame) int {
		h.Close() // host dies while the leaf itself is running
		return 1
	})
	mid := New(func(f *Frame) int {
		v := Await(f, leaf)
		reached = true // must never run: the chain unwinds through here
		return v
	})

	_, err := Run(mid)
	if err != ErrHostGone {
		t.Fatalf("expected ErrHostGone, got %v\n", err)
	}
	if reached {
		t.Fatalf("destroy-chain must unwind past the mid frame without resuming it\n")
	}
}

// Host death while a chain is parked in AwaitFuture must unwind on
// resume instead of running the continuation against the dead host.
func TestDestroyChainOnHostDeathDuringSuspension(t *testing.T) {
	h := &fakeHost{}
	fut := NewFuture[int]()
	reached := false

	result := Spawn(func(f *Frame) Task[int] {
		return BindHost[int](h, func(f *Frame) int {
			v := AwaitFuture(f, fut)
			reached = true // must never run: the host died while parked
			return v + 100
		})
	})

	h.Close() // host dies while the chain is suspended in AwaitFuture
	fut.Fulfill(5)

	v := <-result.ch
	if v != 0 {
		t.Fatalf("expected zero value on destroy-chain, got %d\n", v)
	}
	if reached {
		t.Fatalf("destroy-chain must unwind on resume without running the continuation\n")
	}
}

// Host death of the *resuming* frame (not the awaited child) must also
// unwind: f.child(leaf.host)'s finalize only covers leaf's own host, so
// Await must separately check f's own monitor before returning into f's
// continuation.
func TestDestroyChainOnParentHostDeathDuringChildAwait(t *testing.T) {
	h := &fakeHost{}
	leaf := New(func(f *Frame) int {
		h.Close() // parent frame's host dies mid-leaf, not leaf's own
		return 1
	})
	reached := false
	root := BindHost[int](h, func(f *Frame) int {
		v := Await(f, leaf)
		reached = true // must never run: f's own host died
		return v + 1
	})

	_, err := Run(root)
	if err != ErrHostGone {
		t.Fatalf("expected ErrHostGone, got %v\n", err)
	}
	if reached {
		t.Fatalf("destroy-chain must unwind on the parent's own monitor without resuming it\n")
	}
}

func TestLiveHostResumesNormally(t *testing.T) {
	h := &fakeHost{}
	task := BindHost[int](h, func(f *Frame) int { return 11 })
	v, err := Run(task)
	if err != nil {
		t.Fatalf("unexpected error: %s\n", err)
	}
	if v != 11 {
		t.Fatalf("got %d, want 11\n", v)
	}
}
