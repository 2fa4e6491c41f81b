package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// ExecResult holds the outcome of a single subprocess invocation.
type ExecResult struct {
	Stderr   string
	Err      error
	TimedOut bool
}

// Runner executes an argument vector with a wall-clock timeout. The single
// method keeps the orchestrator and the capability prober testable with a
// fake that simulates success, failure, or timeout without spawning anything.
type Runner interface {
	Run(ctx context.Context, args []string, timeout time.Duration) ExecResult
}

// CommandRunner is the real Runner backed by os/exec. On timeout the process
// is killed via context cancellation and the result is flagged TimedOut.
type CommandRunner struct{}

func (CommandRunner) Run(ctx context.Context, args []string, timeout time.Duration) ExecResult {
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return ExecResult{
		Stderr:   stderrBuf.String(),
		Err:      err,
		TimedOut: errors.Is(runCtx.Err(), context.DeadlineExceeded),
	}
}
