// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package corun

import "errors"

// ErrHostGone is the error a Task resolves to when it is torn down
// because its owning host died before the task could complete, rather
// than having run to completion.
var ErrHostGone = errors.New("corun: host died before task completed")

// errChainCancelled is the package-private sentinel panic value used to
// unwind an entire Await chain when a frame discovers, at its final
// step, that its parent's monitor is no longer alive. It is always
// recovered by the frame that first resumed the chain (Spawn's driver
// goroutine or the runtime goroutine for a synchronous inline chain) and
// never escapes the corun package.
type errChainCancelled struct{}

func (errChainCancelled) Error() string { return "corun: chain cancelled, host gone" }
