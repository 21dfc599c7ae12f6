// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package callback

import (
	"fmt"
	"reflect"
)

// assertNoPointerArg enforces, at bind time, the original source's
// static_assert(!std::is_pointer_v<Args> && ...): a Callback's forwarded
// argument must be a value type, never a pointer, to prevent dangling
// captures in a system where callbacks routinely outlive their
// registrants. The host receiver of BindHost is exempt, the same
// exception the original CallbackFunctionTraits carve out for the class
// receiver.
//
// Go generics cannot express "T is not a pointer kind" as a type
// constraint, so the check runs once at bind time via reflection -- the
// registration-time fallback flagged as acceptable in the design notes.
func assertNoPointerArg[T any]() {
	var zero T
	k := reflect.TypeOf(&zero).Elem().Kind()
	if k == reflect.Ptr || k == reflect.UnsafePointer {
		panic(fmt.Sprintf("callback: argument type %T must not be a pointer", zero))
	}
}
