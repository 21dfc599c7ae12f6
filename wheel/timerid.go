// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package wheel

// TimerID is an opaque handle to a scheduled timer. External holders may
// only use it to request cancellation via Manager.RemoveTimer; it carries
// no readable fields, matching spec.md §3's "they may only use it to
// cancel, never to read fields".
//
// The zero value is the distinguished "no timer" handle (slab index 0 is
// never allocated). Two TimerIDs compare equal with == only if they
// reference the same node at the same generation, which is what makes a
// recycled-and-reused node invisible to a stale TimerID.
type TimerID struct {
	index      uint32
	generation uint32
}
