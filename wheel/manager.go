// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package wheel implements a hierarchical timing-wheel scheduler: O(1)
// insertion and expiration of one-shot and periodic timers across a wide
// tick range, with cascading between progressively coarser wheels.
//
// It is the direct Go translation of the teacher library
// (github.com/intuitivelabs/wtimer)'s hierarchical wheel, simplified from
// wtimer's goroutine-pool/mutex-protected design to the single-threaded,
// cooperative model spec.md requires: Manager is not safe for concurrent
// use and must only ever be driven from one goroutine (see the runtime
// package, which owns that goroutine).
package wheel

import "github.com/kerorv/asyncrt/callback"

// Manager is a hierarchy of tickTimerWheels with strictly increasing
// slotTicks, where wheel i+1's slotTicks equals wheel i's total span
// (wheelTicks). It owns every timerNode in the scheduler and the free
// list recycling them, matching spec.md §3's TickTimerManager.
type Manager struct {
	wheels []tickTimerWheel
	pool   *nodePool
	tick   Ticks
}

// NewManager builds a manager from an ordered list of per-wheel slot
// counts, e.g. NewManager(600, 60, 24) builds the canonical three-level
// 1-minute/1-hour/1-day hierarchy used throughout spec.md's examples
// when paired with a 100ms base tick. At least one wheel is required and
// every slot count must be >= 1.
func NewManager(slotCounts ...uint32) (*Manager, error) {
	if len(slotCounts) == 0 {
		return nil, ErrNoWheels
	}
	wheels := make([]tickTimerWheel, len(slotCounts))
	slotTicks := Ticks(1)
	for i, sc := range slotCounts {
		if sc == 0 {
			return nil, ErrZeroSlots
		}
		wheels[i] = newTickTimerWheel(sc, slotTicks)
		slotTicks = wheels[i].wheelTicks()
	}
	return &Manager{
		wheels: wheels,
		pool:   newNodePool(),
	}, nil
}

// MaxTicks returns the largest interval (in base ticks) this manager can
// schedule: the span of its coarsest wheel.
func (m *Manager) MaxTicks() uint64 {
	return m.wheels[len(m.wheels)-1].wheelTicks().Val()
}

// Tick returns the manager's current absolute tick count.
func (m *Manager) Tick() uint64 {
	return m.tick.Val()
}

// AddPeriodTimer schedules cb to run every interval ticks, starting
// interval ticks from now, and returns a handle that can later be passed
// to RemoveTimer.
func (m *Manager) AddPeriodTimer(interval uint64, cb callback.Callback[TimerID]) TimerID {
	return m.addTimer(interval, cb, true)
}

// AddOneshotTimer schedules cb to run once, interval ticks from now, and
// returns a handle that can later be passed to RemoveTimer.
func (m *Manager) AddOneshotTimer(interval uint64, cb callback.Callback[TimerID]) TimerID {
	return m.addTimer(interval, cb, false)
}

func (m *Manager) addTimer(interval uint64, cb callback.Callback[TimerID], periodic bool) TimerID {
	max := m.MaxTicks()
	if interval < 1 {
		interval = 1
	} else if interval > max {
		// spec.md §9 resolves the clamp-vs-reject open question in favor
		// of clamping, matching original_source's App::AddPeriodTimer.
		interval = max
	}

	idx := m.pool.alloc()
	n := m.pool.at(idx)
	n.interval = Ticks(interval)
	n.expire = m.tick.Add(Ticks(interval))
	n.callback = cb
	n.periodic = periodic
	n.valid = true
	n.next = noNode

	m.placeNode(idx)

	return TimerID{index: uint32(idx), generation: n.generation}
}

// RemoveTimer logically removes the timer referenced by id: it is
// tombstoned in place (valid=false) and recycled the next time its slot
// is visited, exactly as spec.md §4.4 "Cancellation" specifies. A stale
// or zero TimerID is a defined no-op.
func (m *Manager) RemoveTimer(id TimerID) {
	if id.index == 0 || int(id.index) >= len(m.pool.nodes) {
		return
	}
	n := m.pool.at(int32(id.index))
	if !n.inUse || n.generation != id.generation {
		return
	}
	n.valid = false
}

// placeNode inserts the node at idx into the smallest wheel whose span
// covers its interval (spec.md §4.4 step 4).
func (m *Manager) placeNode(idx int32) {
	n := m.pool.at(idx)
	for i := range m.wheels {
		if n.interval <= m.wheels[i].wheelTicks() {
			m.wheels[i].addNode(m.pool, idx)
			return
		}
	}
	// interval was already clamped to MaxTicks, so the coarsest wheel
	// always has room; this branch only guards a future bug.
	m.wheels[len(m.wheels)-1].addNode(m.pool, idx)
}

// RunTick advances the manager by one base tick, cascading overflowing
// wheels inward and firing every timer due this tick (spec.md §4.4
// "Tick step"). It must never be called re-entrantly or from more than
// one goroutine.
func (m *Manager) RunTick() {
	m.tick = m.tick.Add(1)
	m.cascade(0)

	head := m.wheels[0].snapshotAndClearCurrent()
	idx := head
	for idx != noNode {
		n := m.pool.at(idx)
		next := n.next
		id := TimerID{index: uint32(idx), generation: n.generation}

		if n.valid {
			n.callback.Invoke(id)
		}

		// re-read n.valid: the callback may have cancelled this very
		// timer (spec.md S4 "cancel within callback"). n is fetched again
		// because a callback that adds timers may have grown the slab.
		n = m.pool.at(idx)
		if !n.valid || !n.periodic {
			m.pool.recycle(idx)
		} else {
			n.expire = n.expire.Add(n.interval)
			n.next = noNode
			m.placeNode(idx)
		}

		idx = next
	}
}

// cascade advances wheel[i]; if it wraps, it first advances wheel[i+1]
// (recursively), then dumps wheel[i]'s own freshly-reached slot down into
// wheel[i-1] -- the direct translation of TickTimerManager::MoveWheel
// from original_source/tick_timer.cpp. Cascading always moves exactly
// one level per dump, self-correcting because each node's remaining
// distance to expire is always fully contained in wheel[i-1]'s span by
// the time it is dumped there.
func (m *Manager) cascade(i int) {
	if m.wheels[i].moveNext() == 0 {
		if i+1 < len(m.wheels) {
			m.cascade(i + 1)
		}
	}
	if i > 0 {
		head := m.wheels[i].snapshotAndClearCurrent()
		m.wheels[i-1].addNodes(m.pool, head)
	}
}
