package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/interactive-feedback/internal/terminal"
)

var (
	terminalFlags childFlags
	terminalPlain bool
)

var terminalCmd = &cobra.Command{
	Use:    "terminal",
	Short:  "Ask for feedback on the controlling terminal and write the result artifact",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := envLogger()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		console := terminal.OpenConsole()
		defer console.Close()

		return terminal.Run(ctx, console.Prompter(terminalPlain), terminalFlags.request(), terminalFlags.outputFile, logger)
	},
}

func init() {
	terminalFlags.register(terminalCmd)
	terminalCmd.Flags().BoolVar(&terminalPlain, "plain", false, "Use the line-based prompt even on an interactive terminal")
	rootCmd.AddCommand(terminalCmd)
}
