package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

// EndMarker terminates free-text input in line mode.
const EndMarker = "END"

const previewLen = 100

// LinePrompter is the plain line-oriented prompt: numbered options, one selection line,
// then free text until EndMarker or end of input.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *LinePrompter) Prompt(ctx context.Context, req feedback.Request) (feedback.Result, error) {
	lines := newLineReader(p.In)

	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, pterm.DefaultBox.WithTitle("Interactive Feedback").WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).Sprint(req.Prompt))

	sel := feedback.NewSelectionSet(len(req.Options))
	if len(req.Options) > 0 {
		items := make([]pterm.BulletListItem, 0, len(req.Options))
		for i, opt := range req.Options {
			items = append(items, pterm.BulletListItem{Level: 0, Text: opt, Bullet: strconv.Itoa(i+1) + "."})
		}
		list, _ := pterm.DefaultBulletList.WithItems(items).Srender()
		fmt.Fprintln(p.Out, "Options:")
		fmt.Fprint(p.Out, list)
		fmt.Fprintln(p.Out)
		fmt.Fprintln(p.Out, "Select options by number, separated by spaces (press Enter to skip):")
		fmt.Fprint(p.Out, "> ")

		choice, _, err := lines.next(ctx)
		if err != nil {
			return feedback.Empty(), err
		}
		for _, warning := range parseSelection(choice, sel) {
			fmt.Fprintln(p.Out, pterm.Warning.Sprint(warning))
		}
	}

	fmt.Fprintln(p.Out)
	fmt.Fprintf(p.Out, "Enter your feedback (finish with a line containing only %s, or Ctrl+D):\n", EndMarker)
	fmt.Fprintln(p.Out, strings.Repeat("-", 40))

	var text []string
	for {
		line, ok, err := lines.next(ctx)
		if err != nil {
			return feedback.Empty(), err
		}
		if !ok || strings.TrimSpace(line) == EndMarker {
			break
		}
		text = append(text, line)
	}

	result := feedback.Result{InteractiveFeedback: feedback.Compose(req.Options, sel, strings.Join(text, "\n"))}

	fmt.Fprintln(p.Out)
	if result.IsEmpty() {
		fmt.Fprintln(p.Out, pterm.Info.Sprint("No feedback provided"))
	} else {
		fmt.Fprintln(p.Out, pterm.Success.Sprint("Feedback collected: "+preview(result.InteractiveFeedback)))
	}
	return result, nil
}

// parseSelection reads 1-based option numbers into sel and returns a warning per
// rejected token.
func parseSelection(input string, sel *feedback.SelectionSet) []string {
	var warnings []string
	for _, tok := range strings.Fields(input) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid input: %s", tok))
			continue
		}
		if !sel.Add(n - 1) {
			warnings = append(warnings, fmt.Sprintf("invalid option: %s", tok))
		}
	}
	return warnings
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen]) + "..."
}

// lineReader scans lines on its own goroutine so a blocked read never holds up
// cancellation.
type lineReader struct {
	lines chan string
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		defer close(lr.lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lr.lines <- scanner.Text()
		}
	}()
	return lr
}

// next returns the next line, false at end of input, or ctx.Err() when cancelled.
func (lr *lineReader) next(ctx context.Context) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-lr.lines:
		return line, ok, nil
	}
}
