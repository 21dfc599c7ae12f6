// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package wheel

import (
	"testing"

	"github.com/kerorv/asyncrt/callback"
)

func mustManager(t *testing.T, slots ...uint32) *Manager {
	t.Helper()
	m, err := NewManager(slots...)
	if err != nil {
		t.Fatalf("NewManager(%v) failed: %s\n", slots, err)
	}
	return m
}

func TestNewManagerRejectsEmpty(t *testing.T) {
	if _, err := NewManager(); err != ErrNoWheels {
		t.Fatalf("expected ErrNoWheels, got %v\n", err)
	}
}

func TestNewManagerRejectsZeroSlot(t *testing.T) {
	if _, err := NewManager(10, 0); err != ErrZeroSlots {
		t.Fatalf("expected ErrZeroSlots, got %v\n", err)
	}
}

// S1 - basic one-shot.
func TestOneShotBasic(t *testing.T) {
	m := mustManager(t, 10, 10)
	fired := []uint64{}
	cb := callback.Bind(func(id TimerID) { fired = append(fired, m.Tick()) })
	m.AddOneshotTimer(7, cb)

	for i := 0; i < 100; i++ {
		m.RunTick()
	}
	if len(fired) != 1 || fired[0] != 7 {
		t.Fatalf("expected exactly one fire at tick 7, got %v\n", fired)
	}
}

// S2 - cascading.
func TestCascading(t *testing.T) {
	m := mustManager(t, 10, 10)
	fired := []uint64{}
	cb := callback.Bind(func(id TimerID) { fired = append(fired, m.Tick()) })
	m.AddOneshotTimer(35, cb)

	for i := 0; i < 40; i++ {
		m.RunTick()
	}
	if len(fired) != 1 || fired[0] != 35 {
		t.Fatalf("expected exactly one fire at tick 35, got %v\n", fired)
	}
}

// S3 - periodic under cascade.
func TestPeriodicUnderCascade(t *testing.T) {
	m := mustManager(t, 10, 10)
	fired := []uint64{}
	cb := callback.Bind(func(id TimerID) { fired = append(fired, m.Tick()) })
	m.AddPeriodTimer(13, cb)

	for i := 0; i < 105; i++ {
		m.RunTick()
	}
	want := []uint64{13, 26, 39, 52, 65, 78, 91, 104}
	if len(fired) != len(want) {
		t.Fatalf("expected %d fires, got %d: %v\n", len(want), len(fired), fired)
	}
	for i, w := range want {
		if fired[i] != w {
			t.Errorf("fire[%d] = %d, want %d\n", i, fired[i], w)
		}
	}
}

// S4 - cancel within callback.
func TestCancelWithinCallback(t *testing.T) {
	m := mustManager(t, 10, 10)
	var id TimerID
	count := 0
	cb := callback.Bind(func(got TimerID) {
		count++
		if count == 3 {
			m.RemoveTimer(id)
		}
	})
	id = m.AddPeriodTimer(5, cb)

	for i := 0; i < 100; i++ {
		m.RunTick()
	}
	if count != 3 {
		t.Fatalf("expected exactly 3 fires, got %d\n", count)
	}
}

// property 2: cancellation before first expiry.
func TestCancelBeforeExpiry(t *testing.T) {
	m := mustManager(t, 10, 10)
	called := false
	cb := callback.Bind(func(id TimerID) { called = true })
	id := m.AddOneshotTimer(50, cb)
	m.RemoveTimer(id)

	for i := 0; i < 100; i++ {
		m.RunTick()
	}
	if called {
		t.Fatalf("cancelled timer must never invoke its callback\n")
	}
}

// property 3: a recycled node never fires under its old identity.
func TestRecycledNodeDoesNotFireUnderStaleID(t *testing.T) {
	m := mustManager(t, 10, 10)
	oldCalled := false
	staleID := m.AddOneshotTimer(5, callback.Bind(func(id TimerID) { oldCalled = true }))

	for i := 0; i < 5; i++ {
		m.RunTick()
	}
	if !oldCalled {
		t.Fatalf("first timer should have fired\n")
	}

	newCalled := false
	m.AddOneshotTimer(5, callback.Bind(func(id TimerID) { newCalled = true }))
	// stale ID referencing the recycled slot must be a no-op
	m.RemoveTimer(staleID)

	for i := 0; i < 5; i++ {
		m.RunTick()
	}
	if !newCalled {
		t.Fatalf("new timer occupying the recycled slot should still fire\n")
	}
}

func TestRemoveTimerZeroIDIsNoop(t *testing.T) {
	m := mustManager(t, 10)
	m.RemoveTimer(TimerID{}) // must not panic
}

func TestMaxTicksClamping(t *testing.T) {
	m := mustManager(t, 10, 10) // max = 100
	fired := []uint64{}
	cb := callback.Bind(func(id TimerID) { fired = append(fired, m.Tick()) })
	m.AddOneshotTimer(1000, cb)

	for i := 0; i < 100; i++ {
		m.RunTick()
	}
	if len(fired) != 1 || fired[0] != 100 {
		t.Fatalf("interval beyond MaxTicks should clamp and fire at tick 100, got %v\n", fired)
	}
}

func TestManyTimersStress(t *testing.T) {
	m := mustManager(t, 600, 60, 24)
	const n = 20000
	count := 0
	cb := callback.Bind(func(id TimerID) { count++ })
	for i := 0; i < n; i++ {
		m.AddOneshotTimer(uint64(1+i%int(m.MaxTicks())), cb)
	}
	for i := uint64(0); i < m.MaxTicks(); i++ {
		m.RunTick()
	}
	if count != n {
		t.Fatalf("expected all %d timers to fire exactly once, got %d\n", n, count)
	}
}
