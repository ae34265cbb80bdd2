// ./cmd/guided-explorer/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/guided-explorer/cmd"
)

// main is the entry point for the guided-explorer CLI.
func main() {
	// Cancelled on interrupt so that long-running commands (follow, replay)
	// stop cleanly and report their summaries.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
