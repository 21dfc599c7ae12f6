// Copyright 2026 The asyncrt Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file in the root of the source
// tree.

// Command asyncrtd is a demo shell exercising the wheel/corun/runtime
// stack against a tiny embedded RESP server via respclient, the way
// original_source/main.cpp drove App+TickTimerManager+RedisClient
// together. Grounded in the eth-rpc-monitor example's cobra command
// layout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	root := &cobra.Command{
		Use:   "asyncrtd",
		Short: "Demo runtime shell for the timing wheel / coroutine stack",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file (defaults baked in if omitted)")

	root.AddCommand(runCmd())
	root.AddCommand(statusCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
