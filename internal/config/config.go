// Package config loads settings for the cstn command.
//
// Settings come from a YAML file named by the --config flag or, when the
// flag is absent, by the CSTN_CONFIG environment variable. Without either
// the defaults apply. Command-line flags override file values.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alttpo/cstn"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "CSTN_CONFIG"

type Output string

const (
	OutputPretty  Output = "pretty"
	OutputCompact Output = "compact"
)

type Config struct {
	// Indent is the per-level indentation of pretty output. YAML output
	// uses its length in spaces.
	Indent string `yaml:"indent"`

	// MaxDepth bounds container nesting when parsing.
	MaxDepth int `yaml:"max_depth"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Output selects pretty or compact CSTN output.
	Output Output `yaml:"output"`

	// Strict rejects documents with anything but whitespace after the
	// first value.
	Strict bool `yaml:"strict"`
}

func Default() *Config {
	return &Config{
		Indent:   "  ",
		MaxDepth: cstn.DefaultMaxDepth,
		LogLevel: "warn",
		Output:   OutputPretty,
	}
}

// Load reads the file at path, or the file named by CSTN_CONFIG when path
// is empty. It returns the defaults when neither names a file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("indent may only contain spaces and tabs, got %q", c.Indent)
	}
	switch c.Output {
	case OutputPretty, OutputCompact:
	default:
		return fmt.Errorf("output must be %q or %q, got %q", OutputPretty, OutputCompact, c.Output)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
