package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tbb-tools/tbtools/pkg/cli"
	"github.com/tbb-tools/tbtools/pkg/console"
	"github.com/tbb-tools/tbtools/pkg/logger"
)

var version = "dev"

var mainLog = logger.New("main:update-bridgemoji")

var rootCmd = cli.NewBridgemojiCommand()

func init() {
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mainLog.Printf("update-bridgemoji %s", version)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
	}
	os.Exit(cli.ExitCode(err))
}
