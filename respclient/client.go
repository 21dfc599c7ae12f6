// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Package respclient is a RESP (Redis-protocol) TCP client built on top
// of respcodec and corun -- the demo collaborator grounded in
// original_source/redis_client.{h,cpp}, resolving each reply through a
// corun.Future against a real wire protocol.
package respclient

import (
	"bufio"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/kerorv/asyncrt/corun"
	"github.com/kerorv/asyncrt/internal/dlog"
	"github.com/kerorv/asyncrt/respcodec"
)

var log = dlog.New("respclient")

// Result is what a command resolves to: either a decoded RESP value, or
// a connection-level error (distinct from a RESP Error value, which is a
// normal, successful reply).
type Result struct {
	Value respcodec.Value
	Err   error
}

// pendingCmd is one in-flight command awaiting its reply, the Go
// translation of RedisClient::CommandClosure, with a corun.Future in
// place of the original's stored Callback.
type pendingCmd struct {
	fut *corun.Future[Result]
	id  string
}

// Client is a pipelined RESP client: commands are written to the
// connection in the order Command is called, and FIFO-matched against
// replies as they arrive, exactly as original_source's cmds_ deque does.
//
// The read pump runs on its own goroutine internally, and the pending
// queue it shares with Command is guarded by a mutex. Command itself is
// not safe for concurrent use: its write to the connection is not
// locked, so calls must come from one goroutine at a time.
type Client struct {
	conn net.Conn
	w    *bufio.Writer

	mu      sync.Mutex
	pending []pendingCmd

	closeOnce sync.Once
	closed    chan struct{}
}

// Dial connects to addr (host:port) and starts the client's read pump.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("respclient: dial %s: %w", addr, err)
	}
	c := &Client{
		conn:   conn,
		w:      bufio.NewWriter(conn),
		closed: make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Command pipelines cmd (a raw RESP command, typically built with
// respcodec.EncodeCommand) and returns a Future resolved with the
// server's reply once it arrives, preserving request order the way
// original_source's cmds_ FIFO does.
func (c *Client) Command(cmd string) *corun.Future[Result] {
	fut := corun.NewFuture[Result]()
	id := uuid.New().String()

	c.mu.Lock()
	c.pending = append(c.pending, pendingCmd{fut: fut, id: id})
	c.mu.Unlock()

	if log.DBGon() {
		log.DBG("[%s] pipelined: %q\n", id, cmd)
	}

	if _, err := c.w.WriteString(cmd); err != nil {
		c.failAll(fmt.Errorf("respclient: write: %w", err))
		return fut
	}
	if err := c.w.Flush(); err != nil {
		c.failAll(fmt.Errorf("respclient: flush: %w", err))
	}
	return fut
}

// Close tears down the underlying connection and fails every
// still-pending command.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.conn.Close()
	})
}

func (c *Client) readLoop() {
	r := bufio.NewReader(c.conn)
	var buf []byte
	scratch := make([]byte, 4096)

	for {
		n, err := r.Read(scratch)
		if n > 0 {
			buf = append(buf, scratch[:n]...)
			buf = c.drain(buf)
		}
		if err != nil {
			c.failAll(fmt.Errorf("respclient: read: %w", err))
			return
		}
	}
}

// drain decodes as many complete RESP values as buf holds, dispatching
// each to the oldest pending command (the FIFO match original_source's
// Parse/OnCommandComplete pair implements), and returns the unconsumed
// remainder.
func (c *Client) drain(buf []byte) []byte {
	for {
		v, n, err := respcodec.Decode(buf)
		if err == respcodec.ErrShortBuffer {
			return buf
		}
		if err != nil {
			log.WARN("protocol error, dropping connection: %s\n", err)
			c.failAll(err)
			c.Close()
			return nil
		}
		c.dispatch(Result{Value: v})
		buf = buf[n:]
	}
}

func (c *Client) dispatch(res Result) {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		log.WARN("reply with no pending command, dropping\n")
		return
	}
	p := c.pending[0]
	c.pending = c.pending[1:]
	c.mu.Unlock()

	if log.DBGon() {
		log.DBG("[%s] resolved\n", p.id)
	}
	p.fut.Fulfill(res)
}

func (c *Client) failAll(err error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, p := range pending {
		p.fut.Fulfill(Result{Err: err})
	}
}
