// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package wheel

import "github.com/kerorv/asyncrt/callback"

// noNode is the sentinel "no node" index, the slab equivalent of
// wtimer's nil *TimerLnk / wheelNoIdx sentinels.
const noNode int32 = -1

// timerNode is the slab-resident record for one scheduled timer. It
// replaces wtimer's pointer-chained TimerLnk: nodes live in a flat slice
// owned by nodePool and are referenced by index rather than by pointer,
// so the Go translation never needs a GC-visible intrusive pointer graph
// (per the arena/slab suggestion in spec.md's Design Notes).
//
// A node is either linked into exactly one wheel slot's list (via next)
// or sitting on the pool's free list (also via next) -- never both at
// once, mirroring the TimerNode ownership invariant from spec.md §3.
type timerNode struct {
	next       int32 // next node in whichever list currently owns this node
	interval   Ticks
	expire     Ticks
	callback   callback.Callback[TimerID]
	periodic   bool
	valid      bool
	inUse      bool
	generation uint32
}

// nodePool is the arena of timerNodes backing a Manager, plus its
// free-list head -- the slab/generation translation of wtimer's
// "recycle *TimerLnk" free list.
type nodePool struct {
	nodes    []timerNode
	freeHead int32
}

func newNodePool() *nodePool {
	p := &nodePool{freeHead: noNode}
	// index 0 is reserved and never handed out, so the zero-value
	// TimerID{} is unambiguously "no timer".
	p.nodes = append(p.nodes, timerNode{next: noNode})
	return p
}

func (p *nodePool) at(idx int32) *timerNode {
	return &p.nodes[idx]
}

// alloc returns the index of a free node, extending the slab if the free
// list is empty.
func (p *nodePool) alloc() int32 {
	if p.freeHead != noNode {
		idx := p.freeHead
		n := &p.nodes[idx]
		p.freeHead = n.next
		n.next = noNode
		n.inUse = true
		return idx
	}
	p.nodes = append(p.nodes, timerNode{next: noNode, inUse: true})
	return int32(len(p.nodes) - 1)
}

// recycle returns idx to the free list, bumping its generation so any
// TimerID still held by a caller is recognized as stale (property #3:
// "a TimerNode reused for a new registration never fires under its old
// identity").
func (p *nodePool) recycle(idx int32) {
	n := &p.nodes[idx]
	n.inUse = false
	n.valid = false
	n.callback = callback.Callback[TimerID]{}
	n.generation++
	n.next = p.freeHead
	p.freeHead = idx
}
