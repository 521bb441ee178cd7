// Package config provides configuration management for snipconv.
// It supports YAML configuration files, environment variables, and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klauern/snipconv/internal/util"
)

// Config represents the complete snipconv configuration.
type Config struct {
	// Output configures where and how converted snippets are written
	Output OutputConfig `yaml:"output"`

	// Convert configures default conversion behavior
	Convert ConvertConfig `yaml:"convert"`

	// Backup configures backup behavior
	Backup BackupConfig `yaml:"backup"`

	// Log configures logging
	Log LogConfig `yaml:"log"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	// Target is the snippet file to merge into. Supports ~ and environment variables.
	Target string `yaml:"target"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
}

// ConvertConfig holds conversion defaults.
type ConvertConfig struct {
	// Prefix is prepended to every snippet prefix and title
	Prefix string `yaml:"prefix,omitempty"`
	// Clear deletes the target file before converting
	Clear bool `yaml:"clear"`
}

// BackupConfig holds backup settings.
type BackupConfig struct {
	// Enabled enables backups of the target file before it is replaced
	Enabled bool `yaml:"enabled"`
	// Location is the backup directory path
	Location string `yaml:"location"`
	// MaxBackups is the maximum number of backups to keep per target file
	MaxBackups int `yaml:"max_backups"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Target: util.DefaultTargetPath(),
			Color:  "auto",
		},
		Convert: ConvertConfig{
			Clear: false,
		},
		Backup: BackupConfig{
			Enabled:    true,
			Location:   util.SnipconvBackupsPath(),
			MaxBackups: 10,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.SnipconvConfigPath(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	return LoadFromPath(FilePath())
}

// LoadFromPath loads configuration from a specific path, merging with defaults.
// A missing file yields the defaults with environment overrides applied.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is the config file chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern SNIPCONV_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("SNIPCONV_OUTPUT_TARGET"); v != "" {
		c.Output.Target = v
	}
	if v := os.Getenv("SNIPCONV_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}

	if v, ok := os.LookupEnv("SNIPCONV_CONVERT_PREFIX"); ok {
		c.Convert.Prefix = v
	}
	if v := os.Getenv("SNIPCONV_CONVERT_CLEAR"); v != "" {
		c.Convert.Clear = parseBool(v)
	}

	if v := os.Getenv("SNIPCONV_BACKUP_ENABLED"); v != "" {
		c.Backup.Enabled = parseBool(v)
	}
	if v := os.Getenv("SNIPCONV_BACKUP_LOCATION"); v != "" {
		c.Backup.Location = v
	}
	if v := os.Getenv("SNIPCONV_BACKUP_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Backup.MaxBackups = n
		}
	}

	if v := os.Getenv("SNIPCONV_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SNIPCONV_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// TargetPath returns the expanded target path, resolving relative paths from baseDir.
func (c *Config) TargetPath(baseDir string) string {
	return util.ExpandPath(c.Output.Target, baseDir)
}

// BackupDir returns the expanded backup directory.
func (c *Config) BackupDir() string {
	return util.ExpandPath(c.Backup.Location, "")
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}
