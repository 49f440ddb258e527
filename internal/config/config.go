// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSwapfilePath  = "/swap-manager.swap"
	DefaultFstabPath     = "/etc/fstab"
	DefaultSwapTablePath = "/proc/swaps"

	// DefaultConfigPath is consulted when SWAP_MANAGER_CONFIG is unset.
	DefaultConfigPath = "/etc/swap-manager/config.yaml"
)

// Config holds the host paths the tool reads and mutates. All fields have
// working defaults; a config file only needs the keys it overrides.
type Config struct {
	SwapfilePath  string `yaml:"swapfile_path"`
	FstabPath     string `yaml:"fstab_path"`
	SwapTablePath string `yaml:"swap_table_path"`
}

func Default() *Config {
	return &Config{
		SwapfilePath:  DefaultSwapfilePath,
		FstabPath:     DefaultFstabPath,
		SwapTablePath: DefaultSwapTablePath,
	}
}

// Load returns the defaults merged with the YAML config file, if one
// exists. A missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	path := os.Getenv("SWAP_MANAGER_CONFIG")
	if path == "" {
		path = DefaultConfigPath
	}
	return loadFile(path)
}

func loadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.SwapfilePath == "" {
		cfg.SwapfilePath = DefaultSwapfilePath
	}
	if cfg.FstabPath == "" {
		cfg.FstabPath = DefaultFstabPath
	}
	if cfg.SwapTablePath == "" {
		cfg.SwapTablePath = DefaultSwapTablePath
	}
	return cfg, nil
}
