package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`
	Strict  bool   `mapstructure:"strict"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for various commands
type DefaultsConfig struct {
	// Analyze command defaults
	OutputDir   string `mapstructure:"output_dir"`
	Concurrency int    `mapstructure:"concurrency"`

	// Minimum interval between progress notifications
	ProgressInterval string `mapstructure:"progress_interval"`

	// Rollup command defaults
	PreviewRows int `mapstructure:"preview_rows"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Strict:  false,
		Defaults: DefaultsConfig{
			Concurrency:      4,
			ProgressInterval: "200ms",
			PreviewRows:      50,
		},
	}
}

// ProgressInterval parses the configured progress interval, falling back to
// the default on a bad value.
func (c *Config) ProgressInterval() time.Duration {
	d, err := time.ParseDuration(c.Defaults.ProgressInterval)
	if err != nil || d < 0 {
		return 200 * time.Millisecond
	}
	return d
}

// Load loads configuration from files and environment.
// Config file search order (highest precedence first):
// 1. ./.logsheet.yaml or ./.logsheet.yml
// 2. ~/.logsheet.yaml or ~/.logsheet.yml
// 3. $XDG_CONFIG_HOME/logsheet/config.yaml (or ~/.config/logsheet/config.yaml)
// 4. /etc/logsheet/config.yaml
// Returns the loaded config and the path of the file it came from, if any.
func Load() (*Config, string, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, "", err
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, "", err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, configFile, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".logsheet.yaml", ".logsheet.yml", "logsheet.yaml", "logsheet.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "logsheet"))
	}
	searchPaths = append(searchPaths, "/etc/logsheet")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOGSHEET_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOGSHEET_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("LOGSHEET_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("LOGSHEET_STRICT"); v == "true" || v == "1" {
		cfg.Strict = true
	}
	if v := os.Getenv("LOGSHEET_OUTPUT_DIR"); v != "" {
		cfg.Defaults.OutputDir = v
	}
	if v := os.Getenv("LOGSHEET_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Defaults.Concurrency = n
		}
	}
}
