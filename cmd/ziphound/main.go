package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BenjaminSRussell/ziphound/internal/cli"
)

// Exit codes: 0 full completion, 1 configuration or runtime error,
// 130 interrupted with partial results flushed.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.ExecuteContext(ctx)
	if err == nil {
		return
	}

	if errors.Is(err, cli.ErrInterrupted) {
		fmt.Fprintln(os.Stderr, "Interrupted: partial results written")
		os.Exit(exitInterrupted)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
