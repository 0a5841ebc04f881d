package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/fightcard/cmd/fightcard/commands"
	"github.com/okian/fightcard/pkg/logger"
)

func main() {
	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	commands.ExecuteContext(ctx)
}
