package config

import (
	_ "embed"
)

//go:embed defaults/viewer.yaml
var defaultViewerYAML []byte

// DefaultViewerConfig returns the default viewer configuration.
func DefaultViewerConfig() ViewerConfig {
	return ViewerConfig{
		Playback: PlaybackConfig{
			Speed:     2.0,
			MinSpeed:  0.25,
			MaxSpeed:  16.0,
			SpeedStep: 2.0,
		},
		UI: UIConfig{
			Theme:          "dark",
			HighlightTicks: 2,
			ShowHelp:       true,
		},
		Library: LibraryConfig{},
	}
}

// DefaultYAML returns the embedded default configuration file, which
// doubles as documentation for every supported key.
func DefaultYAML() []byte {
	return defaultViewerYAML
}
