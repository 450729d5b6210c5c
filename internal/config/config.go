package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

const defaultGUICommand = "interactive-feedback-gui"

type Config struct {
	Backend     feedback.Preference
	Timeout     time.Duration
	WebHost     string
	OpenBrowser bool
	GUICommand  string
	// KillGrace is how long a signalled child gets before it is killed.
	KillGrace  time.Duration
	LogLevel   string
	ConfigFile string
}

// fileConfig mirrors the optional YAML file. Pointer fields distinguish unset from zero.
type fileConfig struct {
	Backend        string `yaml:"backend"`
	TimeoutSeconds *int   `yaml:"timeout_seconds"`
	WebHost        string `yaml:"web_host"`
	OpenBrowser    *bool  `yaml:"open_browser"`
	GUICommand     string `yaml:"gui_command"`
	KillGraceSecs  *int   `yaml:"kill_grace_seconds"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads the optional YAML file, then lets environment variables override it.
func Load() (*Config, error) {
	cfg := &Config{
		Backend:     feedback.PreferAuto,
		Timeout:     300 * time.Second,
		WebHost:     "localhost",
		OpenBrowser: true,
		GUICommand:  defaultGUICommand,
		KillGrace:   3 * time.Second,
		LogLevel:    "info",
		ConfigFile:  configFilePath(),
	}

	if err := cfg.applyFile(cfg.ConfigFile); err != nil {
		return nil, err
	}

	backend, err := feedback.ParsePreference(envStr("FEEDBACK_BACKEND", string(cfg.Backend)))
	if err != nil {
		return nil, fmt.Errorf("config validation: FEEDBACK_BACKEND: %w", err)
	}
	cfg.Backend = backend
	cfg.Timeout = time.Duration(envInt("FEEDBACK_TIMEOUT", int(cfg.Timeout/time.Second))) * time.Second
	cfg.WebHost = envStr("FEEDBACK_WEB_HOST", cfg.WebHost)
	cfg.OpenBrowser = envBool("FEEDBACK_OPEN_BROWSER", cfg.OpenBrowser)
	cfg.GUICommand = envStr("FEEDBACK_GUI_COMMAND", cfg.GUICommand)
	cfg.KillGrace = time.Duration(envInt("FEEDBACK_KILL_GRACE", int(cfg.KillGrace/time.Second))) * time.Second
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Backend != "" {
		pref, err := feedback.ParsePreference(fc.Backend)
		if err != nil {
			return fmt.Errorf("config file %s: backend: %w", path, err)
		}
		c.Backend = pref
	}
	if fc.TimeoutSeconds != nil {
		c.Timeout = time.Duration(*fc.TimeoutSeconds) * time.Second
	}
	if fc.WebHost != "" {
		c.WebHost = fc.WebHost
	}
	if fc.OpenBrowser != nil {
		c.OpenBrowser = *fc.OpenBrowser
	}
	if fc.GUICommand != "" {
		c.GUICommand = fc.GUICommand
	}
	if fc.KillGraceSecs != nil {
		c.KillGrace = time.Duration(*fc.KillGraceSecs) * time.Second
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

func (c *Config) validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("FEEDBACK_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.KillGrace < 0 {
		return fmt.Errorf("FEEDBACK_KILL_GRACE must not be negative, got %s", c.KillGrace)
	}
	if c.WebHost == "" {
		return fmt.Errorf("FEEDBACK_WEB_HOST must not be empty")
	}
	if _, ok := ParseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn, warning or error, got %q", c.LogLevel)
	}
	return nil
}

// GUIArgv splits GUICommand into the argv the native GUI helper is launched with.
func (c *Config) GUIArgv() []string {
	return strings.Fields(c.GUICommand)
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level. Empty means info.
func ParseLogLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// configFilePath resolves FEEDBACK_CONFIG, falling back to the XDG config location.
func configFilePath() string {
	if v := os.Getenv("FEEDBACK_CONFIG"); v != "" {
		return v
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "interactive-feedback", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "interactive-feedback", "config.yaml")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
