package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultColumnsWidth is the listing width used when the terminal width is
// unknown.
const DefaultColumnsWidth = 80

// Config represents salvage configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory for per-run log files; empty disables file logging
	LogDir string `yaml:"log_dir"`

	// DeletedMarker is the name prefix that marks an entry as deleted
	DeletedMarker string `yaml:"deleted_marker"`

	// FollowLinks follows undeleted symbolic links while recursing
	FollowLinks bool `yaml:"follow_links"`

	// FollowMountpoints crosses into other filesystems while recursing
	FollowMountpoints bool `yaml:"follow_mountpoints"`

	// FindDotfiles includes undeleted names beginning with '.'
	FindDotfiles bool `yaml:"find_dotfiles"`

	// ColumnsWidth is the width multi-column listings are fitted to
	ColumnsWidth int `yaml:"columns_width"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		LogDir:        "",
		DeletedMarker: ".#",
		ColumnsWidth:  DefaultColumnsWidth,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish keys that are absent from keys set to their zero value.
	type yamlConfig struct {
		LogLevel          *string `yaml:"log_level"`
		LogDir            *string `yaml:"log_dir"`
		DeletedMarker     *string `yaml:"deleted_marker"`
		FollowLinks       *bool   `yaml:"follow_links"`
		FollowMountpoints *bool   `yaml:"follow_mountpoints"`
		FindDotfiles      *bool   `yaml:"find_dotfiles"`
		ColumnsWidth      *int    `yaml:"columns_width"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*yamlCfg.LogLevel))
	}
	if yamlCfg.LogDir != nil {
		cfg.LogDir = *yamlCfg.LogDir
	}
	if yamlCfg.DeletedMarker != nil {
		cfg.DeletedMarker = *yamlCfg.DeletedMarker
	}
	if yamlCfg.FollowLinks != nil {
		cfg.FollowLinks = *yamlCfg.FollowLinks
	}
	if yamlCfg.FollowMountpoints != nil {
		cfg.FollowMountpoints = *yamlCfg.FollowMountpoints
	}
	if yamlCfg.FindDotfiles != nil {
		cfg.FindDotfiles = *yamlCfg.FindDotfiles
	}
	if yamlCfg.ColumnsWidth != nil {
		cfg.ColumnsWidth = *yamlCfg.ColumnsWidth
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .salvage/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DirName, FileName))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, followLinks *bool, followMountpoints *bool, findDotfiles *bool) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*logLevel))
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if followLinks != nil {
		c.FollowLinks = *followLinks
	}
	if followMountpoints != nil {
		c.FollowMountpoints = *followMountpoints
	}
	if findDotfiles != nil {
		c.FindDotfiles = *findDotfiles
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.DeletedMarker == "" {
		return fmt.Errorf("deleted_marker cannot be empty")
	}
	if strings.Contains(c.DeletedMarker, "/") {
		return fmt.Errorf("deleted_marker %q must not contain a path separator", c.DeletedMarker)
	}

	if c.ColumnsWidth <= 0 {
		return fmt.Errorf("columns_width must be > 0, got %d", c.ColumnsWidth)
	}

	return nil
}
