package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var execLog = logger.New("cli:exec")

// CommandRunner starts a child process and waits for it to exit.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec. Nil streams inherit the parent's.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Dir    string
}

// Run implements CommandRunner. Cancelling ctx kills the child.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	execLog.Printf("Running: %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err != nil {
		execLog.Printf("Command %s finished with error: %v", name, err)
	} else {
		execLog.Printf("Command %s finished successfully", name)
	}
	return err
}

// isChildExit reports whether err only says that the child process ran and
// exited unsuccessfully, as opposed to not being started at all. Any error
// exposing an exit code qualifies, *exec.ExitError included.
func isChildExit(err error) bool {
	var exitErr interface{ ExitCode() int }
	return errors.As(err, &exitErr)
}
