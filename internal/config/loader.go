package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the viewer configuration.
// Search order: customPath -> ~/.hexview/configs/viewer.yaml -> ./configs/viewer.yaml -> embedded default
func Load(customPath string) (ViewerConfig, error) {
	var cfg ViewerConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		normalize(&cfg)
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("viewer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				normalize(&cfg)
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/viewer.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			normalize(&cfg)
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultViewerYAML, &cfg); err != nil {
		return DefaultViewerConfig(), nil // Fallback to hardcoded if embed fails
	}
	normalize(&cfg)
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexview", "configs", filename)
}

// DefaultDBPath resolves the library database location: the configured
// path if set, otherwise ~/.hexview/library.db.
func (c ViewerConfig) DefaultDBPath() (string, error) {
	if c.Library.DBPath != "" {
		return c.Library.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".hexview", "library.db"), nil
}

// normalize backfills missing or nonsensical values with defaults, so a
// partial config file stays usable.
func normalize(cfg *ViewerConfig) {
	def := DefaultViewerConfig()
	if cfg.Playback.Speed <= 0 {
		cfg.Playback.Speed = def.Playback.Speed
	}
	if cfg.Playback.MinSpeed <= 0 {
		cfg.Playback.MinSpeed = def.Playback.MinSpeed
	}
	if cfg.Playback.MaxSpeed < cfg.Playback.MinSpeed {
		cfg.Playback.MaxSpeed = def.Playback.MaxSpeed
	}
	if cfg.Playback.SpeedStep <= 1 {
		cfg.Playback.SpeedStep = def.Playback.SpeedStep
	}
	if cfg.UI.Theme != "dark" && cfg.UI.Theme != "light" {
		cfg.UI.Theme = def.UI.Theme
	}
	if cfg.UI.HighlightTicks < 0 {
		cfg.UI.HighlightTicks = def.UI.HighlightTicks
	}
}
