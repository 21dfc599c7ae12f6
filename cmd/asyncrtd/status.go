// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/kerorv/asyncrt/corun"
	"github.com/kerorv/asyncrt/respclient"
	"github.com/kerorv/asyncrt/respcodec"
)

func statusCmd() *cobra.Command {
	var samples int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Start a throwaway demo server, fire a handful of PINGs through it, and print latencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(samples)
		},
	}
	cmd.Flags().IntVar(&samples, "samples", 5, "number of PING round-trips to sample")
	return cmd
}

func runStatus(samples int) error {
	ln, err := startEchoServer("127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("starting demo server: %w", err)
	}
	defer ln.Close()

	client, err := respclient.Dial(ln.Addr().String())
	if err != nil {
		return fmt.Errorf("dialing demo server: %w", err)
	}
	defer client.Close()

	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	tbl := table.New("Sample", "Latency", "Result")

	for i := 1; i <= samples; i++ {
		start := time.Now()
		fut := client.Command(respcodec.EncodeCommand("PING"))
		res, err := corun.Run(corun.New(func(f *corun.Frame) respclient.Result {
			return corun.AwaitFuture(f, fut)
		}))
		latency := time.Since(start)
		if err != nil {
			tbl.AddRow(i, latency, bad(err.Error()))
			continue
		}
		if res.Err != nil {
			tbl.AddRow(i, latency, bad(res.Err.Error()))
			continue
		}
		tbl.AddRow(i, latency, ok(respcodec.Describe(res.Value)))
	}

	tbl.Print()
	return nil
}
