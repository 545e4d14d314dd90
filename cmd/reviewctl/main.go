package main

import (
	"context"
	"os/signal"
	"syscall"

	"review_sentiment/cmd/reviewctl/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	commands.ExecuteContext(ctx)
}
