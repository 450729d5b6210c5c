package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/interactive-feedback/internal/config"
	"github.com/iammorganparry/interactive-feedback/internal/feedback"
	"github.com/iammorganparry/interactive-feedback/internal/mcp"
	"github.com/iammorganparry/interactive-feedback/internal/orchestrator"
)

var serveBackend string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveBackend != "" {
			pref, err := feedback.ParsePreference(serveBackend)
			if err != nil {
				return fmt.Errorf("--backend: %w", err)
			}
			cfg.Backend = pref
		}

		logger := newLogger(os.Stderr, cfg.LogLevel)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		orch := orchestrator.New(orchestrator.Options{
			WebHost:        cfg.WebHost,
			OpenBrowser:    cfg.OpenBrowser,
			DefaultTimeout: cfg.Timeout,
			KillGrace:      cfg.KillGrace,
			GUICommand:     cfg.GUIArgv(),
		}, logger)

		srv := mcp.NewServer(orch, mcp.Config{
			Preference:   cfg.Backend,
			Timeout:      cfg.Timeout,
			Capabilities: func() feedback.Capabilities { return config.DetectCapabilities(cfg) },
			Version:      Version,
		}, logger)

		logger.Info("interactive-feedback server starting",
			"version", Version,
			"backend", string(cfg.Backend),
			"timeout", cfg.Timeout.String(),
			"config_file", cfg.ConfigFile,
		)

		if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
			logger.Error("mcp server error", "error", err)
			return err
		}
		logger.Info("interactive-feedback server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveBackend, "backend", "", "Backend preference: auto, web, gui or terminal (overrides FEEDBACK_BACKEND)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}
