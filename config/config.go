package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	appName         = "task-tracker"
	defaultFileName = "tasks.json"

	EnvFile        = "TASKS_FILE"
	EnvLockTimeout = "TASKS_LOCK_TIMEOUT"
	EnvLogLevel    = "TASKS_LOG_LEVEL"
)

// Config holds all application configuration
type Config struct {
	File        string        // backing file for the task store
	LockTimeout time.Duration // how long to wait for another process
	LogLevel    string
}

// fileConfig is the on-disk TOML layout. Empty values leave the
// previous layer untouched.
type fileConfig struct {
	File        string `toml:"file"`
	LockTimeout string `toml:"lock_timeout"`
	LogLevel    string `toml:"log_level"`
}

// Load resolves configuration from the user config file, a .env file in
// the working directory and the environment, in that order
func Load() (*Config, error) {
	return LoadFiles(DefaultConfigPath(), ".env")
}

// LoadFiles is Load with explicit config and dotenv paths. Either may
// be empty or missing.
func LoadFiles(configPath, envPath string) (*Config, error) {
	cfg := &Config{
		LockTimeout: 5 * time.Second,
		LogLevel:    "warn",
	}

	if configPath != "" {
		if err := cfg.mergeFile(configPath); err != nil {
			return nil, err
		}
	}

	// godotenv never overrides variables already set
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}

	if err := cfg.resolveFile(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if fc.File != "" {
		c.File = fc.File
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LockTimeout != "" {
		d, err := parseTimeout(fc.LockTimeout)
		if err != nil {
			return fmt.Errorf("config %s: lock_timeout: %w", path, err)
		}
		c.LockTimeout = d
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv(EnvFile); v != "" {
		c.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLockTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLockTimeout, err)
		}
		c.LockTimeout = d
	}
	return nil
}

// resolveFile defaults the store to ~/tasks.json and expands a leading ~/
func (c *Config) resolveFile() error {
	if c.File != "" && c.File != "~" && !strings.HasPrefix(c.File, "~/") {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}

	switch {
	case c.File == "":
		c.File = filepath.Join(home, defaultFileName)
	case c.File == "~":
		return fmt.Errorf("task file %q is a directory", c.File)
	default:
		c.File = filepath.Join(home, strings.TrimPrefix(c.File, "~/"))
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// DefaultConfigPath returns the user config file location, or "" if no
// config directory can be determined
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}
