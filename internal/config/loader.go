package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMaze loads the maze configuration.
// Search order: customPath -> ~/.maze/configs/maze.yaml -> ./configs/maze.yaml -> embedded default
//
// Files are layered over the defaults, so a file may set only the keys it
// changes. Only a custom path reports read, parse or validation errors;
// the other locations are skipped when unusable.
func LoadMaze(customPath string) (MazeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return MazeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseMaze(data)
		if err != nil {
			return MazeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("maze.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseMaze(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "maze.yaml")); err == nil {
		if cfg, err := parseMaze(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseMaze(defaultMazeYAML)
	if err != nil {
		return DefaultMazeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseMaze decodes data over the hardcoded defaults and validates the result.
func parseMaze(data []byte) (MazeConfig, error) {
	cfg := DefaultMazeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MazeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return MazeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".maze", "configs", filename)
}
