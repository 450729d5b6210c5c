package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FEEDBACK_BACKEND", "FEEDBACK_TIMEOUT", "FEEDBACK_WEB_HOST", "FEEDBACK_OPEN_BROWSER",
		"FEEDBACK_GUI_COMMAND", "FEEDBACK_KILL_GRACE", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("FEEDBACK_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != feedback.PreferAuto {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.Timeout != 300*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.WebHost != "localhost" || !cfg.OpenBrowser || cfg.GUICommand != defaultGUICommand {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "backend: terminal\ntimeout_seconds: 42\nopen_browser: false\ngui_command: my-gui\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FEEDBACK_CONFIG", path)
	t.Setenv("FEEDBACK_TIMEOUT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != feedback.PreferTerminal {
		t.Errorf("Backend = %q, want terminal from file", cfg.Backend)
	}
	if cfg.Timeout != 7*time.Second {
		t.Errorf("Timeout = %s, want env override 7s", cfg.Timeout)
	}
	if cfg.OpenBrowser {
		t.Error("OpenBrowser should be false from file")
	}
	if cfg.GUICommand != "my-gui" {
		t.Errorf("GUICommand = %q", cfg.GUICommand)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "FEEDBACK_BACKEND", "smoke-signals"},
		{"zero timeout", "FEEDBACK_TIMEOUT", "0"},
		{"bad log level", "LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "WARNING"} {
		t.Run(level, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LOG_LEVEL", level)
			if _, err := Load(); err != nil {
				t.Fatalf("Load rejected LOG_LEVEL=%s: %v", level, err)
			}
			if _, ok := ParseLogLevel(level); !ok {
				t.Errorf("ParseLogLevel(%q) not ok", level)
			}
		})
	}
	if lvl, ok := ParseLogLevel("warning"); !ok || lvl != slog.LevelWarn {
		t.Errorf("warning = %v, %v", lvl, ok)
	}
}

func TestGUIArgv(t *testing.T) {
	cfg := &Config{GUICommand: " python3  feedback_ui.py --dark "}
	got := cfg.GUIArgv()
	if len(got) != 3 || got[0] != "python3" || got[2] != "--dark" {
		t.Errorf("GUIArgv = %q", got)
	}
	if argv := (&Config{}).GUIArgv(); len(argv) != 0 {
		t.Errorf("empty command argv = %q", argv)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: [web\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FEEDBACK_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDetect(t *testing.T) {
	env := map[string]string{}
	p := probes{
		goos:   "linux",
		getenv: func(k string) string { return env[k] },
		lookPath: func(name string) (string, error) {
			if name == "present-gui" {
				return "/usr/bin/present-gui", nil
			}
			return "", errors.New("not found")
		},
		hasTTY: func() bool { return false },
		hasWeb: func() bool { return true },
	}

	caps := detect(&Config{GUICommand: "present-gui"}, p)
	if caps.Display {
		t.Error("Display should be false without DISPLAY")
	}
	if !caps.GUIToolkit || !caps.WebResource || caps.Terminal {
		t.Errorf("unexpected caps %+v", caps)
	}

	env["WAYLAND_DISPLAY"] = "wayland-0"
	if !detect(&Config{}, p).Display {
		t.Error("WAYLAND_DISPLAY should count as a display")
	}
	if detect(&Config{GUICommand: "absent-gui"}, p).GUIToolkit {
		t.Error("absent GUI command should not count as a toolkit")
	}

	for _, cmd := range []string{"present-gui --theme dark", "  present-gui  "} {
		if !detect(&Config{GUICommand: cmd}, p).GUIToolkit {
			t.Errorf("GUI command %q should be found by its first word", cmd)
		}
	}
	if detect(&Config{GUICommand: "   "}, p).GUIToolkit {
		t.Error("blank GUI command should not count as a toolkit")
	}

	p.goos = "darwin"
	delete(env, "WAYLAND_DISPLAY")
	if !detect(&Config{}, p).Display {
		t.Error("darwin always has a display")
	}
}
