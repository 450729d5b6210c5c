// Package cli provides the interactive-feedback command tree: the MCP stdio server and
// the child entry points the server launches for its process-isolated backends.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/interactive-feedback/internal/config"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "interactive-feedback",
	Short: "MCP server that asks a human for feedback",
	Long: `interactive-feedback exposes an "interactive_feedback" MCP tool over stdio. Each call shows
a question to a human on a local web page, a native window or the terminal, and returns
their answer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation is what MCP clients run.
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the JSON logger. It always writes to w, never stdout, which
// belongs to the RPC channel.
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	lvl, _ := config.ParseLogLevel(level)
	return lvl
}

// envLogger is used by child commands, which do not load the config file.
func envLogger() *slog.Logger {
	return newLogger(os.Stderr, os.Getenv("LOG_LEVEL"))
}
