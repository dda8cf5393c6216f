// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"zb.256lights.llc/ljbc/internal/ljdis"
	"zombiezen.com/go/bass/sigterm"
)

func main() {
	rootCommand := ljdis.New()
	ctx, cancel := signal.NotifyContext(context.Background(), sigterm.Signals()...)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ljdis:", err)
		os.Exit(1)
	}
}
