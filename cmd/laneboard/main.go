// Package main provides the entry point for laneboard.
//
// laneboard is a terminal Kanban board with drag and drop over a remote task
// store. Column order and visibility are kept per user; lane changes show up
// on the board immediately and roll back if the store refuses them.
//
// Usage:
//
//	laneboard [flags]
//	laneboard serve
//	laneboard columns show|toggle|move|reset
//	laneboard tasks list|move
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/riordanpawley/laneboard/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
