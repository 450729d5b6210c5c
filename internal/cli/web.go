package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/interactive-feedback/internal/artifact"
	"github.com/iammorganparry/interactive-feedback/internal/config"
	"github.com/iammorganparry/interactive-feedback/internal/feedback"
	"github.com/iammorganparry/interactive-feedback/internal/orchestrator"
)

var webFlags childFlags

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve one feedback form in the browser and write the result artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			if werr := artifact.WriteEmpty(webFlags.outputFile); werr != nil {
				return fmt.Errorf("%w (writing empty result: %v)", err, werr)
			}
			return err
		}
		logger := newLogger(os.Stderr, cfg.LogLevel)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		orch := orchestrator.New(orchestrator.Options{
			WebHost:        cfg.WebHost,
			OpenBrowser:    cfg.OpenBrowser,
			DefaultTimeout: cfg.Timeout,
		}, logger)

		result := orch.Collect(ctx, webFlags.request(), feedback.LocalWeb, cfg.Timeout)
		return artifact.Write(webFlags.outputFile, result)
	},
}

func init() {
	webFlags.register(webCmd)
	rootCmd.AddCommand(webCmd)
}
