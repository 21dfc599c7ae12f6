// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package main

import (
	"bufio"
	"net"

	"github.com/kerorv/asyncrt/internal/dlog"
	"github.com/kerorv/asyncrt/respcodec"
)

var echoLog = dlog.New("echoserver")

// startEchoServer binds addr and replies "+PONG\r\n" to every complete
// RESP value any connection sends it. It stands in for a real Redis
// server so the demo binary is self-contained; respclient.Client does
// not know or care that its peer is this toy server rather than a real
// one.
func startEchoServer(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveEchoConn(conn)
		}
	}()
	return ln, nil
}

func serveEchoConn(conn net.Conn) {
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
			if echoLog.DBGon() {
				echoLog.DBG("connection closed: %s\n", err)
			}
			return
		}
	}
}
