package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/interactive-feedback/internal/config"
	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Show the detected capabilities and the backend a tool call would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		caps := config.DetectCapabilities(cfg)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "preference:  %s\n", cfg.Backend)
		fmt.Fprintf(out, "display:     %t\n", caps.Display)
		fmt.Fprintf(out, "gui toolkit: %t (%s)\n", caps.GUIToolkit, cfg.GUICommand)
		fmt.Fprintf(out, "web:         %t\n", caps.WebResource)
		fmt.Fprintf(out, "terminal:    %t\n", caps.Terminal)

		choice, err := feedback.Select(cfg.Backend, caps)
		if err != nil {
			fmt.Fprintf(out, "backend:     none (%v)\n", err)
			return nil
		}
		fmt.Fprintf(out, "backend:     %s\n", choice)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "interactive-feedback %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(versionCmd)
}
