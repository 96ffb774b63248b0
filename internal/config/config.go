// Package config loads treesync settings from defaults, a .treesync.yaml file,
// TREESYNC_ environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// FileName is the config file looked up in the working directory and
	// its parents.
	FileName = ".treesync.yaml"
	// EnvPrefix prefixes the environment variables that override the file.
	EnvPrefix = "TREESYNC_"
	// DefaultJournal is where saves are journaled unless configured.
	DefaultJournal = ".treesync/journal.db"
	// JournalOff disables the save journal.
	JournalOff = "off"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// the config file.
const maxUpwardSearchLevels = 10

// Config holds all settings.
type Config struct {
	Marker       string        `koanf:"marker"`
	Extensions   []string      `koanf:"extensions"`
	Indent       int           `koanf:"indent"`
	HistoryDepth int           `koanf:"history_depth"`
	Journal      string        `koanf:"journal"`
	Watch        bool          `koanf:"watch"`
	Debounce     time.Duration `koanf:"debounce"`
	Parallel     int           `koanf:"parallel"`
	Verbose      bool          `koanf:"verbose"`
	Format       string        `koanf:"format"`
	LogFile      string        `koanf:"log_file"`

	// FileUsed is the config file that was loaded, if any.
	FileUsed string `koanf:"-"`
}

// Defaults returns the lowest-precedence layer.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"marker":        "Composable",
		"extensions":    []string{".kt"},
		"indent":        4,
		"history_depth": 0,
		"journal":       DefaultJournal,
		"watch":         true,
		"debounce":      "200ms",
		"parallel":      0,
		"verbose":       false,
		"format":        "table",
		"log_file":      "",
	}
}

// IndentUnit is the whitespace of one indentation level.
func (c *Config) IndentUnit() string {
	return strings.Repeat(" ", c.Indent)
}

// JournalEnabled reports whether saves should be journaled.
func (c *Config) JournalEnabled() bool {
	return c.Journal != "" && c.Journal != JournalOff
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Indent < 1 || c.Indent > 16 {
		errs = append(errs, fmt.Errorf("indent must be between 1 and 16, got %d", c.Indent))
	}

	if c.HistoryDepth < 0 {
		errs = append(errs, fmt.Errorf("history_depth must not be negative, got %d", c.HistoryDepth))
	}

	if c.Parallel < 0 {
		errs = append(errs, fmt.Errorf("parallel must not be negative, got %d", c.Parallel))
	}

	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative, got %s", c.Debounce))
	}

	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("extensions must not be empty"))
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("extension %q must start with a dot", ext))
		}
	}

	return errors.Join(errs...)
}

// Load builds the configuration. cfgFile names an explicit config file; when
// empty, FileName is searched for upward from the working directory. Only
// flags that were set on the command line override the other layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := cfgFile
	if used == "" {
		used = findConfigFile()
	}

	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// TREESYNC_HISTORY_DEPTH -> history_depth
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}

			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.FileUsed = used
	cfg.Extensions = splitList(cfg.Extensions)
	cfg.Marker = strings.TrimPrefix(cfg.Marker, "@")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// splitList flattens comma-separated entries, which is how list values
// arrive from the environment.
func splitList(items []string) []string {
	out := make([]string, 0, len(items))

	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for range maxUpwardSearchLevels {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}
