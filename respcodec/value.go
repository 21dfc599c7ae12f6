// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package respcodec implements the RESP (REdis Serialization Protocol)
// wire format, grounded directly in original_source/resp_codec.{h,cpp}.
// It is a standalone, optional demo collaborator: nothing in lifetime,
// callback, wheel or corun imports it.
package respcodec

import "fmt"

// Value is a decoded RESP message. The original C++ expresses this as
// std::variant<RedisInteger, RedisString, RedisError, RedisArray>; Go has
// no variant type, so each alternative is its own concrete type
// implementing the unexported marker method, the idiomatic closed-sum-type
// substitute.
type Value interface {
	fmt.Stringer
	respValue()
}

// Integer is a RESP ":" integer reply.
type Integer int64

func (Integer) respValue()     {}
func (v Integer) String() string { return fmt.Sprintf("Integer: %d\n", int64(v)) }

// SimpleString is a RESP "+" simple-string reply.
type SimpleString string

func (SimpleString) respValue()     {}
func (v SimpleString) String() string { return fmt.Sprintf("String: %s\n", string(v)) }

// BulkString is a RESP "$" bulk-string reply. Valid is false for the
// RESP null bulk string ("$-1\r\n"), matching RedisString's
// std::variant<nullptr_t, std::string> alternative.
type BulkString struct {
	Valid bool
	S     string
}

func (BulkString) respValue() {}
func (v BulkString) String() string {
	if !v.Valid {
		return "String: nil\n"
	}
	return fmt.Sprintf("String: %s\n", v.S)
}

// Error is a RESP "-" error reply.
type Error string

func (Error) respValue()     {}
func (v Error) String() string { return fmt.Sprintf("Error: %s\n", string(v)) }

// Array is a RESP "*" array reply. Valid is false for the RESP null
// array ("*-1\r\n").
type Array struct {
	Valid    bool
	Elements []Value
}

func (Array) respValue() {}
func (v Array) String() string {
	if !v.Valid {
		return "Array: nil\n"
	}
	s := fmt.Sprintf("Array[%d]: \n", len(v.Elements))
	for _, e := range v.Elements {
		s += e.String()
	}
	return s
}
