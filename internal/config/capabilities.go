package config

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
	"github.com/iammorganparry/interactive-feedback/internal/web"
)

// probes are the ambient lookups behind a capability snapshot.
type probes struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
	hasTTY   func() bool
	hasWeb   func() bool
}

var systemProbes = probes{
	goos:     runtime.GOOS,
	getenv:   os.Getenv,
	lookPath: exec.LookPath,
	hasTTY:   controllingTerminal,
	hasWeb:   web.TemplatesAvailable,
}

// DetectCapabilities reads the environment once and returns the snapshot handed to
// feedback.Select.
func DetectCapabilities(cfg *Config) feedback.Capabilities {
	return detect(cfg, systemProbes)
}

func detect(cfg *Config, p probes) feedback.Capabilities {
	caps := feedback.Capabilities{
		WebResource: p.hasWeb(),
		Terminal:    p.hasTTY(),
	}

	switch p.goos {
	case "darwin", "windows":
		caps.Display = true
	default:
		caps.Display = p.getenv("DISPLAY") != "" || p.getenv("WAYLAND_DISPLAY") != ""
	}

	if argv := cfg.GUIArgv(); len(argv) > 0 {
		if _, err := p.lookPath(argv[0]); err == nil {
			caps.GUIToolkit = true
		}
	}
	return caps
}

func controllingTerminal() bool {
	if runtime.GOOS == "windows" {
		return true
	}
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
