// cmd/condenv/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arc-language/condenv/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
