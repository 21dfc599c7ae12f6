// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package wheel

import "strconv"

// Ticks is the type used for absolute and relative tick counts throughout
// the wheel package. It is adapted from wtimer's own Ticks type, which
// packs a wraparound-safe value into a fixed bit width sized to its
// hard-coded four-wheel, 14/14/10/10-bit layout. This package's wheel
// count and per-wheel slot counts are caller-configured (NewManager takes
// an arbitrary slot-count list), so there is no fixed total bit width to
// mask against; Ticks is instead a plain monotonically increasing
// uint64 wrapper that keeps the tick arithmetic named and readable the
// way wtimer's Ticks did, without the wraparound bookkeeping wtimer
// needed for its fixed-size wheel hierarchy.
type Ticks uint64

// Add returns t+u.
func (t Ticks) Add(u Ticks) Ticks { return t + u }

// Sub returns t-u. Callers must ensure t >= u; the wheel package never
// subtracts past zero since tick only moves forward.
func (t Ticks) Sub(u Ticks) Ticks { return t - u }

// Val returns the tick count as a uint64.
func (t Ticks) Val() uint64 { return uint64(t) }

// String renders the tick count for logging/debugging.
func (t Ticks) String() string { return strconv.FormatUint(uint64(t), 10) }
