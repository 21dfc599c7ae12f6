// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package runtime wires wheel.Manager and corun into a driveable
// event-loop shell: a single goroutine reading a time.Ticker, converting
// elapsed wall-clock time into wheel ticks, and draining a buffered
// mailbox of functions posted with Post, so work handed over from
// another goroutine only ever touches core state from the one goroutine
// that owns it.
package runtime

import (
	"time"

	"github.com/intuitivelabs/timestamp"
	"golang.org/x/sync/errgroup"

	"github.com/kerorv/asyncrt/callback"
	"github.com/kerorv/asyncrt/internal/dlog"
	"github.com/kerorv/asyncrt/wheel"
)

var log = dlog.New("runtime")

// postedResult is a pending cross-goroutine callback to run on the
// owning goroutine, the translation of wtimer's run-queue dispatch (see
// wtimer.go's processExpired/runqListen) simplified to this package's
// single-threaded model: anything that must touch wheel/corun state from
// outside the shell's own goroutine posts a closure here instead.
type postedResult func()

// Shell owns a wheel.Manager and the one goroutine allowed to call
// RunTick. It is the Go analogue of original_source/app.{h,cpp}'s App,
// which paired an ASIO steady_timer with a TickTimerManager.
type Shell struct {
	mgr        *wheel.Manager
	tickPeriod time.Duration

	mailbox chan postedResult
	cancel  chan struct{}

	lastTick timestamp.TS
}

// NewShell builds a Shell driving a wheel.Manager built from slotCounts
// at the given base tick period. tickPeriod must be positive.
func NewShell(tickPeriod time.Duration, slotCounts ...uint32) (*Shell, error) {
	mgr, err := wheel.NewManager(slotCounts...)
	if err != nil {
		return nil, err
	}
	if tickPeriod <= 0 {
		tickPeriod = 100 * time.Millisecond
	}
	return &Shell{
		mgr:        mgr,
		tickPeriod: tickPeriod,
		mailbox:    make(chan postedResult, 64),
	}, nil
}

// AddPeriodTimer schedules cb every d, clamped into [1 tick, MaxTicks]
// the way original_source's App::AddPeriodTimer clamps a
// caller-supplied chrono::seconds duration.
func (s *Shell) AddPeriodTimer(d time.Duration, cb callback.Callback[wheel.TimerID]) wheel.TimerID {
	return s.mgr.AddPeriodTimer(s.durationToTicks(d), cb)
}

// AddOneshotTimer schedules cb once, after d, with the same clamping.
func (s *Shell) AddOneshotTimer(d time.Duration, cb callback.Callback[wheel.TimerID]) wheel.TimerID {
	return s.mgr.AddOneshotTimer(s.durationToTicks(d), cb)
}

// RemoveTimer cancels id; a stale or zero id is a no-op.
func (s *Shell) RemoveTimer(id wheel.TimerID) {
	s.mgr.RemoveTimer(id)
}

func (s *Shell) durationToTicks(d time.Duration) uint64 {
	ticks := uint64(d / s.tickPeriod)
	if d%s.tickPeriod != 0 {
		ticks++
	}
	if ticks < 1 {
		ticks = 1
	}
	if max := s.mgr.MaxTicks(); ticks > max {
		ticks = max
	}
	return ticks
}

// Post queues fn to run on the shell's own goroutine, as soon as Run's
// loop receives it (anything still queued is also drained before each
// tick is processed). This is the only safe way for another goroutine (e.g. a
// respclient connection's read pump) to touch timers or fulfill a
// corun.Future that a timer callback is watching.
func (s *Shell) Post(fn func()) {
	s.mailbox <- postedResult(fn)
}

// Run drives the shell until ctx-equivalent Stop is called, reading
// elapsed wall-clock time off github.com/intuitivelabs/timestamp (the
// teacher's own time source) the way wtimer_ticker.go's ticker() does,
// and calling RunTick once per elapsed tickPeriod -- catching up with
// more than one RunTick call if the goroutine was scheduled late, rather
// than dropping ticks the way a naive single RunTick-per-wakeup loop
// would.
func (s *Shell) Run() error {
	s.cancel = make(chan struct{})
	s.lastTick = timestamp.Now()

	g := &errgroup.Group{}
	g.Go(func() error {
		ticker := time.NewTicker(s.tickPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-s.cancel:
				return nil
			case fn := <-s.mailbox:
				fn()
			case <-ticker.C:
				s.drainMailbox()
				s.advance()
			}
		}
	})
	return g.Wait()
}

func (s *Shell) drainMailbox() {
	for {
		select {
		case fn := <-s.mailbox:
			fn()
		default:
			return
		}
	}
}

func (s *Shell) advance() {
	now := timestamp.Now()
	elapsed := now.Sub(s.lastTick)
	if elapsed < 0 {
		log.WARN("clock went backwards by %s, skipping tick\n", -elapsed)
		s.lastTick = now
		return
	}
	n := int(elapsed / s.tickPeriod)
	if n < 1 {
		return
	}
	if n > 1 && log.DBGon() {
		log.DBG("catching up %d ticks (elapsed %s)\n", n, elapsed)
	}
	s.lastTick = s.lastTick.Add(s.tickPeriod * time.Duration(n))
	for i := 0; i < n; i++ {
		s.mgr.RunTick()
	}
}

// Stop signals Run to return. Callers that need to know Run has actually
// returned should wait on Run's own return rather than on Stop.
func (s *Shell) Stop() {
	if s.cancel != nil {
		close(s.cancel)
	}
}
