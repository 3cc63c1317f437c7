// Package config provides YAML-based configuration loading for the
// replay viewer.
package config

// ViewerConfig contains all configuration for the viewer.
type ViewerConfig struct {
	Playback PlaybackConfig `yaml:"playback"`
	UI       UIConfig       `yaml:"ui"`
	Library  LibraryConfig  `yaml:"library"`
}

// PlaybackConfig defines automatic playback parameters.
type PlaybackConfig struct {
	Speed     float64 `yaml:"speed"`      // steps per second
	MinSpeed  float64 `yaml:"min_speed"`  // lower bound for +/- adjustment
	MaxSpeed  float64 `yaml:"max_speed"`  // upper bound for +/- adjustment
	SpeedStep float64 `yaml:"speed_step"` // multiplier applied per adjustment
}

// UIConfig defines presentation parameters.
type UIConfig struct {
	Theme          string `yaml:"theme"`           // "dark" or "light"
	HighlightTicks int    `yaml:"highlight_ticks"` // how long placed/cleared cells stay marked
	ShowHelp       bool   `yaml:"show_help"`
}

// LibraryConfig defines where the viewing history database lives.
type LibraryConfig struct {
	DBPath string `yaml:"db_path"` // empty means ~/.hexview/library.db
}
