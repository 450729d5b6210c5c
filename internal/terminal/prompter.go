// Package terminal is the process-isolated terminal backend. It runs as a child of the
// orchestrator, talks to the human on the controlling terminal and hands its answer
// back through a result artifact.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iammorganparry/interactive-feedback/internal/artifact"
	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

// Prompter collects feedback for one request. Implementations return ctx.Err() when
// interrupted and a zero Result when the human cancels.
type Prompter interface {
	Prompt(ctx context.Context, req feedback.Request) (feedback.Result, error)
}

// Run prompts and always leaves a well-formed artifact at outputFile, including on
// cancellation, prompt errors and panics. Cancellation is not an error.
func Run(ctx context.Context, p Prompter, req feedback.Request, outputFile string, logger *slog.Logger) (err error) {
	if logger == nil {
		logger = slog.Default()
	}
	result := feedback.Empty()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("terminal prompt panicked: %v", r)
			result = feedback.Empty()
		}
		if werr := artifact.Write(outputFile, result); werr != nil {
			logger.Error("failed to write result artifact", "path", outputFile, "error", werr)
			if err == nil {
				err = werr
			}
		}
	}()

	res, err := p.Prompt(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Info("feedback prompt cancelled")
			return nil
		}
		return fmt.Errorf("prompt: %w", err)
	}

	result = res
	return nil
}
