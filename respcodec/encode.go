// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package respcodec

import (
	"fmt"
	"strings"
)

// EncodeCommand renders args as a RESP array of bulk strings, the wire
// form every real Redis server expects a request to take. This goes
// beyond original_source's RESPEncoder (whose Encode is actually a
// debug pretty-printer, not a wire encoder -- see Describe below for
// that) since original_source/redis_client.cpp's Command() took a
// pre-formatted command string from its caller; respclient.Client.Command
// does the same, and its callers use this to build that string.
func EncodeCommand(args ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%d\r\n", len(args))
	for _, a := range args {
		fmt.Fprintf(&b, "$%d\r\n%s\r\n", len(a), a)
	}
	return b.String()
}

// Describe renders v the way original_source/resp_codec.cpp's ToString
// does: a human-readable debug dump, not a wire encoding. Kept under its
// original name's intent for parity with RESPEncoder::Encode, which was
// itself only ever used for debug logging in original_source.
func Describe(v Value) string {
	return v.String()
}
