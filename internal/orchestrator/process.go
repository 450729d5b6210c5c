package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/iammorganparry/interactive-feedback/internal/artifact"
	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

// collectProcess runs a fully isolated child whose exit status and result artifact are
// the only channels back. The artifact is removed on every return path.
func (o *Orchestrator) collectProcess(ctx context.Context, logger *slog.Logger, argv []string, req feedback.Request, timeout time.Duration, output io.Writer) (feedback.Result, error) {
	if len(argv) == 0 || argv[0] == "" {
		return feedback.Empty(), feedback.NewError(feedback.KindBackendLaunchFailed, "no backend command configured")
	}

	path, err := artifact.NewPath(o.opts.ArtifactDir)
	if err != nil {
		return feedback.Empty(), feedback.Wrap(feedback.KindBackendLaunchFailed, "allocate result artifact", err)
	}
	defer func() {
		if err := artifact.Remove(path); err != nil {
			logger.Warn("failed to remove result artifact", "path", path, "error", err)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], childArgs(argv[1:], req, path)...)
	if o.opts.KillGrace > 0 {
		cmd.Cancel = func() error { return signalProcess(cmd.Process, stopSignal) }
		cmd.WaitDelay = o.opts.KillGrace
	}
	if output != nil {
		cmd.Stdout = output
		cmd.Stderr = output
	}

	logger.Debug("launching feedback backend", "command", argv[0], "artifact", path)
	if err := cmd.Start(); err != nil {
		return feedback.Empty(), feedback.Wrap(feedback.KindBackendLaunchFailed, "start "+argv[0], err)
	}

	waitErr := cmd.Wait()

	if runCtx.Err() != nil {
		if ctx.Err() != nil {
			return feedback.Empty(), fmt.Errorf("backend cancelled: %w", ctx.Err())
		}
		return feedback.Empty(), feedback.NewError(feedback.KindTimeout, fmt.Sprintf("backend did not finish within %s", timeout))
	}

	result, readErr := artifact.Read(path)
	if waitErr != nil {
		if readErr != nil {
			return feedback.Empty(), feedback.Wrap(feedback.KindBackendLaunchFailed,
				fmt.Sprintf("backend exited with status %d and no usable artifact", exitCode(waitErr)), waitErr)
		}
		logger.Warn("feedback backend exited with error", "error", waitErr, "exit_code", exitCode(waitErr))
	} else if readErr != nil {
		return feedback.Empty(), readErr
	}
	return result, nil
}

// childArgs appends the artifact contract flags to the configured command arguments.
func childArgs(prefix []string, req feedback.Request, outputFile string) []string {
	args := make([]string, 0, len(prefix)+6)
	args = append(args, prefix...)
	return append(args,
		"--prompt", req.Prompt,
		"--output-file", outputFile,
		"--predefined-options", feedback.JoinOptions(req.Options),
	)
}

// signalProcess sends sig to a process, returning nil if the process has already
// exited (os.ErrProcessDone).
func signalProcess(proc *os.Process, sig os.Signal) error {
	if proc == nil {
		return nil
	}
	err := proc.Signal(sig)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

// exitCode extracts the child's status; -1 when it was killed by a signal or never ran.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
