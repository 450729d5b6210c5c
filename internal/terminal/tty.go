package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Console is where the prompt talks to the human.
type Console struct {
	In          *os.File
	Out         *os.File
	Interactive bool
	tty         *os.File
}

// OpenConsole prefers the controlling terminal so the parent's stdio (the RPC
// channel) is never read from or written to. Without one it falls back to stdin and
// stderr.
func OpenConsole() *Console {
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		return &Console{In: tty, Out: tty, Interactive: isTerminal(tty), tty: tty}
	}
	return &Console{
		In:          os.Stdin,
		Out:         os.Stderr,
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stderr),
	}
}

// Prompter picks the bubbletea form on an interactive terminal unless plain is set.
func (c *Console) Prompter(plain bool) Prompter {
	if c.Interactive && !plain {
		return &FormPrompter{In: c.In, Out: c.Out}
	}
	return &LinePrompter{In: c.In, Out: c.Out}
}

func (c *Console) Close() error {
	if c.tty != nil {
		return c.tty.Close()
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
