package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the per-project and per-user configuration directory.
	DirName = ".salvage"
	// FileName is the configuration file inside DirName.
	FileName = "config.yaml"
	// HomeEnv overrides the user-level configuration directory.
	HomeEnv = "SALVAGE_HOME"
)

// GetSalvageHome returns the user-level salvage directory.
// Priority order:
//  1. SALVAGE_HOME environment variable (if set)
//  2. $HOME/.salvage
func GetSalvageHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}
	return filepath.Join(userHome, DirName), nil
}

// Resolve finds the configuration that applies to a run started in dir.
// An explicit path always wins. Otherwise dir/.salvage/config.yaml is used
// when present, then the file in the salvage home, then the defaults.
// The returned source is the file that was read, or "" for defaults.
func Resolve(explicit, dir string) (*Config, string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		cfg, err := LoadConfig(explicit)
		return cfg, explicit, err
	}

	project := filepath.Join(dir, DirName, FileName)
	if _, err := os.Stat(project); err == nil {
		cfg, err := LoadConfigFromDir(dir)
		return cfg, project, err
	}

	if home, err := GetSalvageHome(); err == nil {
		path := filepath.Join(home, FileName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			return cfg, path, err
		}
	}
	return DefaultConfig(), "", nil
}
