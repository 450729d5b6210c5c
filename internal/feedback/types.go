package feedback

import (
	"strings"
)

// OptionSeparator joins predefined options on a child process command line.
const OptionSeparator = "|||"

// Request is a single prompt shown to the human. Treat as immutable once built.
type Request struct {
	Prompt  string
	Options []string
}

// NewRequest copies options, trimming each and dropping blanks and repeats. An option
// containing OptionSeparator is split into its parts, so the list survives the round
// trip through JoinOptions and SplitOptions unchanged.
func NewRequest(prompt string, options []string) Request {
	var opts []string
	seen := make(map[string]bool)
	for _, raw := range options {
		for _, o := range SplitOptions(raw) {
			if !seen[o] {
				seen[o] = true
				opts = append(opts, o)
			}
		}
	}
	return Request{Prompt: prompt, Options: opts}
}

// Result is the canonical reply returned to every caller, on success and failure alike.
type Result struct {
	InteractiveFeedback string `json:"interactive_feedback"`
}

// Empty is the reply used for cancellation, timeout and every internal failure.
func Empty() Result {
	return Result{}
}

// IsEmpty reports whether no feedback text was collected.
func (r Result) IsEmpty() bool {
	return r.InteractiveFeedback == ""
}

// JoinOptions serializes options for the --predefined-options flag.
func JoinOptions(options []string) string {
	return strings.Join(options, OptionSeparator)
}

// SplitOptions is the inverse of JoinOptions. Blank entries are dropped.
func SplitOptions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var opts []string
	for _, o := range strings.Split(s, OptionSeparator) {
		o = strings.TrimSpace(o)
		if o != "" {
			opts = append(opts, o)
		}
	}
	return opts
}
