// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package wheel

import "errors"

// ErrNoWheels is returned by NewManager when called with no slot counts
// at all: spec.md requires at least one wheel.
var ErrNoWheels = errors.New("wheel: manager requires at least one wheel")

// ErrZeroSlots is returned by NewManager when any wheel's slot count is
// zero: a zero-sized wheel cannot hold a cursor position.
var ErrZeroSlots = errors.New("wheel: a wheel cannot have zero slots")
