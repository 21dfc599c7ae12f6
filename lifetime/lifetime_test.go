// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package lifetime

import "testing"

func TestAbsentMonitor(t *testing.T) {
	var m Monitor
	if m.IsValid() {
		t.Fatalf("zero-value Monitor should be invalid\n")
	}
	if m.IsAlive() {
		t.Fatalf("zero-value Monitor should never report alive\n")
	}
}

func TestAliveThenDead(t *testing.T) {
	var tr Tracker
	m := tr.Monitor()
	if !m.IsValid() {
		t.Fatalf("Monitor from a Tracker should be valid\n")
	}
	if !m.IsAlive() {
		t.Fatalf("Monitor should report alive before Close\n")
	}
	tr.Close()
	if m.IsAlive() {
		t.Fatalf("Monitor should report dead after Close\n")
	}
}

func TestMonitorCopiesShareState(t *testing.T) {
	var tr Tracker
	m1 := tr.Monitor()
	m2 := m1 // copy
	tr.Close()
	if m1.IsAlive() || m2.IsAlive() {
		t.Fatalf("all copies of a Monitor must observe Close\n")
	}
}

func TestCloseBeforeAnyMonitorTaken(t *testing.T) {
	var tr Tracker
	tr.Close()
	m := tr.Monitor()
	if m.IsAlive() {
		t.Fatalf("Monitor taken after Close must report dead\n")
	}
}

func TestMultipleHostsIndependent(t *testing.T) {
	var a, b Tracker
	ma := a.Monitor()
	mb := b.Monitor()
	a.Close()
	if ma.IsAlive() {
		t.Fatalf("a's monitor should be dead\n")
	}
	if !mb.IsAlive() {
		t.Fatalf("b's monitor should be unaffected by a.Close\n")
	}
}
