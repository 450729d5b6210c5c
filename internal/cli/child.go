package cli

import (
	"github.com/spf13/cobra"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

// childFlags is the flag contract shared by every process-isolated backend.
type childFlags struct {
	prompt            string
	outputFile        string
	predefinedOptions string
}

func (f *childFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.prompt, "prompt", "I implemented the changes you requested.", "The prompt to show to the user")
	cmd.Flags().StringVar(&f.outputFile, "output-file", "", "Path to save the feedback result as JSON")
	cmd.Flags().StringVar(&f.predefinedOptions, "predefined-options", "", "Pipe-separated list of predefined options (|||)")
	_ = cmd.MarkFlagRequired("output-file")
}

func (f *childFlags) request() feedback.Request {
	return feedback.NewRequest(f.prompt, feedback.SplitOptions(f.predefinedOptions))
}
