// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/kerorv/asyncrt/callback"
	"github.com/kerorv/asyncrt/corun"
	"github.com/kerorv/asyncrt/internal/config"
	"github.com/kerorv/asyncrt/internal/dlog"
	"github.com/kerorv/asyncrt/respclient"
	"github.com/kerorv/asyncrt/respcodec"
	"github.com/kerorv/asyncrt/runtime"
	"github.com/kerorv/asyncrt/wheel"
)

func runCmd() *cobra.Command {
	var pingInterval time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the runtime shell and ping the embedded demo server, re-arming a one-shot timer after each reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cfgPath, pingInterval)
		},
	}
	cmd.Flags().DurationVar(&pingInterval, "ping-interval", time.Second, "how often to PING the demo RESP server")
	return cmd
}

func loadConfig(path string) config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		dlog.New("cmd").WARN("failed to load %s, using defaults: %s\n", path, err)
		return config.Default()
	}
	return cfg
}

func runShell(path string, pingInterval time.Duration) error {
	cfg := loadConfig(path)

	addr := cfg.RespListenAddr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := startEchoServer(addr)
	if err != nil {
		return fmt.Errorf("starting demo server: %w", err)
	}
	defer ln.Close()

	shell, err := runtime.NewShell(time.Duration(cfg.TickPeriodMS)*time.Millisecond, cfg.WheelSlots...)
	if err != nil {
		return fmt.Errorf("building runtime shell: %w", err)
	}

	client, err := respclient.Dial(ln.Addr().String())
	if err != nil {
		return fmt.Errorf("dialing demo server: %w", err)
	}
	defer client.Close()

	if path != "" {
		stop, err := config.WatchLogLevel(path, func(level string) {
			if lvl, ok := dlog.LevelFromString(level); ok {
				dlog.SetLevel(lvl)
			}
			fmt.Fprintf(os.Stderr, "log level reloaded: %s\n", level)
		})
		if err == nil {
			defer stop()
		}
	}

	var mu sync.Mutex
	history := make([]pingResult, 0, 20)

	schedulePing(shell, pingInterval, client, &mu, &history)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		shell.Stop()
	}()

	printHistoryOnExit := func() {
		mu.Lock()
		defer mu.Unlock()
		renderHistory(history)
	}
	defer printHistoryOnExit()

	return shell.Run()
}

type pingResult struct {
	seq     int
	latency time.Duration
	reply   string
	err     error
}

func schedulePing(shell *runtime.Shell, interval time.Duration, client *respclient.Client, mu *sync.Mutex, history *[]pingResult) {
	seq := 0
	var arm func()
	arm = func() {
		seq++
		n := seq
		start := time.Now()
		shell.AddOneshotTimer(interval, callback.Bind(func(_ wheel.TimerID) {
			fut := client.Command(respcodec.EncodeCommand("PING"))
			go func() {
				res, _ := corun.Run(corun.New(func(f *corun.Frame) respclient.Result {
					return corun.AwaitFuture(f, fut)
				}))
				pr := pingResult{seq: n, latency: time.Since(start)}
				if res.Err != nil {
					pr.err = res.Err
				} else {
					pr.reply = respcodec.Describe(res.Value)
				}
				shell.Post(func() {
					mu.Lock()
					*history = append(*history, pr)
					mu.Unlock()
					arm()
				})
			}()
		}))
	}
	arm()
}

func renderHistory(history []pingResult) {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	tbl := table.New("Seq", "Latency", "Result")
	for _, r := range history {
		if r.err != nil {
			tbl.AddRow(r.seq, r.latency, bad(r.err.Error()))
		} else {
			tbl.AddRow(r.seq, r.latency, ok(r.reply))
		}
	}
	tbl.Print()
}
