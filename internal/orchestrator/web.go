package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
	"github.com/iammorganparry/interactive-feedback/internal/web"
)

// collectWeb runs the embedded server on its own goroutine and blocks on the
// PendingAnswer, the timeout, or ctx. On timeout the listener is closed before
// returning, so a late submission can never become the answer.
func (o *Orchestrator) collectWeb(ctx context.Context, logger *slog.Logger, req feedback.Request, timeout time.Duration) (feedback.Result, error) {
	pending := feedback.NewPendingAnswer()
	srv := web.NewServer(req, pending, logger)

	url, err := srv.Start(o.opts.WebHost)
	if err != nil {
		return feedback.Empty(), feedback.Wrap(feedback.KindBackendLaunchFailed, "start web server", err)
	}

	if o.opts.OpenBrowser {
		if err := o.opts.Browser(url); err != nil {
			logger.Warn("could not open a browser, open the URL manually", "url", url, "error", err)
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-pending.Done():
		text, _ := pending.Text()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Debug("web server shutdown", "error", err)
		}
		return feedback.Result{InteractiveFeedback: text}, nil

	case <-timer.C:
		srv.Close()
		return feedback.Empty(), feedback.NewError(feedback.KindTimeout, fmt.Sprintf("no submission within %s", timeout))

	case <-ctx.Done():
		srv.Close()
		return feedback.Empty(), fmt.Errorf("web collection cancelled: %w", ctx.Err())
	}
}
