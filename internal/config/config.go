// Package config handles engine and tool configuration.
package config

// Config holds all settings.
type Config struct {
	Collision CollisionConfig `yaml:"collision"`
	Movement  MovementConfig  `yaml:"movement"`
	Level     LevelConfig     `yaml:"level"`
	Window    WindowConfig    `yaml:"window"`
	Debug     DebugConfig     `yaml:"debug"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CollisionConfig fixes the grid layout. The origin is centred on a
// GridCols x GridRows map so layouts do not depend on which tiles exist.
type CollisionConfig struct {
	CellSize       float32 `yaml:"cell_size"`
	GridCols       int     `yaml:"grid_cols"`
	GridRows       int     `yaml:"grid_rows"`
	ColliderRadius float32 `yaml:"collider_radius"`
}

// MovementConfig tunes player bodies.
type MovementConfig struct {
	BaseSpeed     float32 `yaml:"base_speed"`
	RunMultiplier float32 `yaml:"run_multiplier"`
}

// LevelConfig selects the level file.
type LevelConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // tmx, yaml, gat; empty detects from extension
}

// WindowConfig holds viewer window settings.
type WindowConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	VSync  bool    `yaml:"vsync"`
	Zoom   float32 `yaml:"zoom"`
}

// DebugConfig toggles debug output.
type DebugConfig struct {
	Overlay        bool `yaml:"overlay"`
	ObstacleSearch int  `yaml:"obstacle_search"` // cells searched for the nearest obstacle
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Collision: CollisionConfig{
			CellSize:       32,
			GridCols:       25,
			GridRows:       18,
			ColliderRadius: 16,
		},
		Movement: MovementConfig{
			BaseSpeed:     150,
			RunMultiplier: 1.8,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			Zoom:   1,
		},
		Debug: DebugConfig{
			Overlay:        true,
			ObstacleSearch: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
