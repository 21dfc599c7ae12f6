// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package respclient

import (
	"bufio"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/kerorv/asyncrt/corun"
	"github.com/kerorv/asyncrt/respcodec"
)

var errTimedOut = errors.New("timed out waiting for future")

// startFakeServer accepts one connection and replies "+PONG\r\n" to
// every complete RESP value it reads, preserving order.
func startFakeServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %s\n", err)
	}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		var buf []byte
		scratch := make([]byte, 4096)
		for {
			n, err := r.Read(scratch)
			if n > 0 {
				buf = append(buf, scratch[:n]...)
				for {
					_, consumed, derr := respcodec.Decode(buf)
					if derr != nil {
						break
					}
					buf = buf[consumed:]
					if _, werr := conn.Write([]byte("+PONG\r\n")); werr != nil {
						return
					}
				}
			}
			if err != nil {
				return
			}
		}
	}()
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().String()
}

func TestCommandRoundTrip(t *testing.T) {
	addr := startFakeServer(t)
	c, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial: %s\n", err)
	}
	defer c.Close()

	fut := c.Command(respcodec.EncodeCommand("PING"))
	res, err := awaitWithTimeout(t, fut, 2*time.Second)
	if err != nil {
		t.Fatalf("command timed out or failed: %s\n", err)
	}
	if res.Err != nil {
		t.Fatalf("unexpected error: %s\n", res.Err)
	}
	if res.Value != respcodec.SimpleString("PONG") {
		t.Fatalf("got %#v, want SimpleString(PONG)\n", res.Value)
	}
}

func TestPipelinedCommandsPreserveOrder(t *testing.T) {
	addr := startFakeServer(t)
	c, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial: %s\n", err)
	}
	defer c.Close()

	futs := make([]*corun.Future[Result], 5)
	for i := range futs {
		futs[i] = c.Command(respcodec.EncodeCommand("PING"))
	}
	for i, fut := range futs {
		res, err := awaitWithTimeout(t, fut, 2*time.Second)
		if err != nil {
			t.Fatalf("command %d timed out: %s\n", i, err)
		}
		if res.Err != nil {
			t.Fatalf("command %d: unexpected error %s\n", i, res.Err)
		}
	}
}

// awaitWithTimeout drives fut to completion on a corun.Task chain, the
// normal way application code consumes a respclient reply, bounding the
// wait so a protocol bug in the test fixture fails fast instead of
// hanging the suite.
func awaitWithTimeout(t *testing.T, fut *corun.Future[Result], d time.Duration) (Result, error) {
	t.Helper()
	done := make(chan Result, 1)
	go func() {
		v, _ := corun.Run(corun.New(func(f *corun.Frame) Result {
			return corun.AwaitFuture(f, fut)
		}))
		done <- v
	}()
	select {
	case v := <-done:
		return v, nil
	case <-time.After(d):
		var zero Result
		return zero, errTimedOut
	}
}
