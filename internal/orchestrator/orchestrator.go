// Package orchestrator launches the selected feedback backend, waits for it with a
// bounded timeout and turns whatever happened into the canonical reply.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
	"github.com/iammorganparry/interactive-feedback/internal/web"
)

const (
	defaultTimeout = 300 * time.Second
	// shutdownGrace bounds how long a completed web form may take to flush its
	// acknowledgement page.
	shutdownGrace = 2 * time.Second
)

type Options struct {
	// WebHost is the interface the web backend binds to.
	WebHost string
	// OpenBrowser launches the user's browser on the form URL.
	OpenBrowser bool
	// Browser opens a URL; defaults to web.OpenBrowser.
	Browser func(url string) error
	// DefaultTimeout applies when Collect is given a non-positive timeout.
	DefaultTimeout time.Duration
	// KillGrace is the delay between signalling a timed-out child and killing it.
	KillGrace time.Duration
	// TerminalCommand is the argv prefix of the terminal child. The artifact flags are
	// appended. Defaults to this executable's "terminal" subcommand.
	TerminalCommand []string
	// GUICommand is the argv prefix of the native GUI helper.
	GUICommand []string
	// ArtifactDir holds result artifacts; os.TempDir when empty.
	ArtifactDir string
	// ChildOutput receives the terminal child's stdout and stderr. Defaults to
	// os.Stderr so nothing reaches the RPC channel on stdout.
	ChildOutput io.Writer
}

type Orchestrator struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.WebHost == "" {
		opts.WebHost = "localhost"
	}
	if opts.Browser == nil {
		opts.Browser = web.OpenBrowser
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = defaultTimeout
	}
	if opts.ChildOutput == nil {
		opts.ChildOutput = os.Stderr
	}
	if len(opts.TerminalCommand) == 0 {
		if exe, err := os.Executable(); err == nil {
			opts.TerminalCommand = []string{exe, "terminal"}
		}
	}
	return &Orchestrator{opts: opts, logger: logger}
}

// Collect runs one feedback request on the chosen backend. It never returns an error
// and never panics: every failure is logged and becomes an empty Result.
func (o *Orchestrator) Collect(ctx context.Context, req feedback.Request, choice feedback.Choice, timeout time.Duration) (result feedback.Result) {
	logger := o.logger.With("collect_id", uuid.New().String()[:8], "backend", choice.String())

	defer func() {
		if r := recover(); r != nil {
			logger.Error("feedback collection panicked", "panic", r)
			result = feedback.Empty()
		}
	}()

	if timeout <= 0 {
		timeout = o.opts.DefaultTimeout
	}

	start := time.Now()
	result, err := o.collect(ctx, logger, req, choice, timeout)
	if err != nil {
		logger.Warn("feedback collection degraded to empty reply",
			"error", err,
			"kind", feedback.KindOf(err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return feedback.Empty()
	}

	logger.Info("feedback collected",
		"empty", result.IsEmpty(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result
}

func (o *Orchestrator) collect(ctx context.Context, logger *slog.Logger, req feedback.Request, choice feedback.Choice, timeout time.Duration) (feedback.Result, error) {
	switch choice {
	case feedback.LocalWeb:
		return o.collectWeb(ctx, logger, req, timeout)
	case feedback.Terminal:
		return o.collectProcess(ctx, logger, o.opts.TerminalCommand, req, timeout, o.opts.ChildOutput)
	case feedback.NativeGUI:
		return o.collectProcess(ctx, logger, o.opts.GUICommand, req, timeout, nil)
	default:
		return feedback.Empty(), feedback.NewError(feedback.KindNoBackendAvailable, fmt.Sprintf("unsupported backend %s", choice))
	}
}
