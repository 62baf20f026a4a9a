// Package config loads tasktracker settings from defaults, a TOML file, the
// environment and command-line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultConfigFile = "tasktracker.toml"
	DefaultDataDir    = "./data"
	DefaultBackend    = "json"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultAddr       = ":8080"
	DefaultLogName    = "tasktracker.log"
)

// Config holds the runtime configuration.
type Config struct {
	DataDir   string `toml:"data_dir"`
	Backend   string `toml:"backend"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
	Addr      string `toml:"addr"`
}

// Override adjusts a loaded Config; command-line flags are applied this way.
type Override func(*Config)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:   DefaultDataDir,
		Backend:   DefaultBackend,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Addr:      DefaultAddr,
	}
}

// Load builds the configuration. If path is empty, DefaultConfigFile in the
// working directory is read when it exists; an explicit path must exist.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = DefaultConfigFile
	}
	if err := loadConfigFile(cfg, file); err != nil {
		if path != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
	}

	loadFromEnv(cfg)

	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	cfg.DataDir = getEnv("TASKTRACKER_DATA_DIR", cfg.DataDir)
	cfg.Backend = getEnv("TASKTRACKER_BACKEND", cfg.Backend)
	cfg.LogLevel = getEnv("TASKTRACKER_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("TASKTRACKER_LOG_FORMAT", cfg.LogFormat)
	cfg.LogFile = getEnv("TASKTRACKER_LOG_FILE", cfg.LogFile)
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	cfg.Addr = getEnv("TASKTRACKER_ADDR", cfg.Addr)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) finalize() error {
	c.DataDir = expandPath(c.DataDir)
	c.LogFile = expandPath(c.LogFile)
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	return c.Validate()
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir is required")
	}

	switch c.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("backend must be 'json' or 'sqlite', got %q", c.Backend)
	}

	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format must be 'text', 'json' or 'logfmt', got %q", c.LogFormat)
	}

	return nil
}

// DefaultLogPath returns the log file used when the terminal UI owns the
// screen and no log_file is configured.
func (c *Config) DefaultLogPath() string {
	return filepath.Join(c.DataDir, DefaultLogName)
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}
	return expanded
}
