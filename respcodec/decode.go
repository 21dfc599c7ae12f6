// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package respcodec

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrShortBuffer is returned by Decode when buf holds an incomplete
// message: the caller should read more bytes and retry, the Go
// translation of original_source/redis_client.cpp's RCE_LESSDATA.
var ErrShortBuffer = errors.New("respcodec: incomplete message")

// ErrProtocol is returned by Decode when buf's prefix byte or a length
// field is malformed, the translation of RCE_PROTOCOL.
var ErrProtocol = errors.New("respcodec: protocol error")

const (
	simpleStrPrefix = '+'
	errorPrefix     = '-'
	integerPrefix   = ':'
	bulkStrPrefix   = '$'
	arrayPrefix     = '*'
)

// Decode parses exactly one RESP value from the front of buf and returns
// it along with the number of bytes consumed. It returns ErrShortBuffer
// if buf does not yet hold a complete value; the caller should buffer
// more bytes and call Decode again with the same, now-longer, buf.
func Decode(buf []byte) (Value, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrShortBuffer
	}
	switch buf[0] {
	case simpleStrPrefix:
		return decodeSimpleStr(buf)
	case errorPrefix:
		return decodeError(buf)
	case integerPrefix:
		return decodeInteger(buf)
	case bulkStrPrefix:
		return decodeBulkStr(buf)
	case arrayPrefix:
		return decodeArray(buf)
	default:
		return nil, 0, fmt.Errorf("%w: unexpected prefix %q", ErrProtocol, buf[0])
	}
}

func findCRLF(buf []byte) int {
	return bytes.Index(buf, []byte("\r\n"))
}

func decodeSimpleStr(buf []byte) (Value, int, error) {
	pos := findCRLF(buf)
	if pos < 0 {
		return nil, 0, ErrShortBuffer
	}
	return SimpleString(buf[1:pos]), pos + 2, nil
}

func decodeError(buf []byte) (Value, int, error) {
	pos := findCRLF(buf)
	if pos < 0 {
		return nil, 0, ErrShortBuffer
	}
	return Error(buf[1:pos]), pos + 2, nil
}

func decodeInteger(buf []byte) (Value, int, error) {
	pos := findCRLF(buf)
	if pos < 0 {
		return nil, 0, ErrShortBuffer
	}
	n, err := strconv.ParseInt(string(buf[1:pos]), 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrProtocol, err)
	}
	return Integer(n), pos + 2, nil
}

// readLen parses the length prefix common to bulk strings and arrays
// ("$<len>\r\n" / "*<len>\r\n"), returning the length, the header's own
// byte count and whether it denotes the null ("-1") form.
func readLen(buf []byte) (length, headerLen int, isNull bool, err error) {
	pos := findCRLF(buf)
	if pos < 0 {
		return 0, 0, false, ErrShortBuffer
	}
	n, perr := strconv.Atoi(string(buf[1:pos]))
	if perr != nil || n < -1 {
		return 0, 0, false, fmt.Errorf("%w: %s", ErrProtocol, perr)
	}
	if n == -1 {
		return 0, pos + 2, true, nil
	}
	return n, pos + 2, false, nil
}

func decodeBulkStr(buf []byte) (Value, int, error) {
	length, headerLen, isNull, err := readLen(buf)
	if err != nil {
		return nil, 0, err
	}
	if isNull {
		return BulkString{Valid: false}, headerLen, nil
	}
	total := headerLen + length + 2
	if len(buf) < total {
		return nil, 0, ErrShortBuffer
	}
	return BulkString{Valid: true, S: string(buf[headerLen : headerLen+length])}, total, nil
}

func decodeArray(buf []byte) (Value, int, error) {
	length, headerLen, isNull, err := readLen(buf)
	if err != nil {
		return nil, 0, err
	}
	if isNull {
		return Array{Valid: false}, headerLen, nil
	}
	elements := make([]Value, length)
	consumed := headerLen
	for i := 0; i < length; i++ {
		v, n, err := Decode(buf[consumed:])
		if err != nil {
			return nil, 0, err
		}
		elements[i] = v
		consumed += n
	}
	return Array{Valid: true, Elements: elements}, consumed, nil
}
