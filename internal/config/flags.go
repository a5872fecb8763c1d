package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLevel     = flag.String("level", "", "Level file (.tmx, .yaml, .gat)")
	flagCellSize  = flag.Float64("cell-size", 0, "Collision cell size in world units")
	flagRadius    = flag.Float64("radius", 0, "Player collider radius")
	flagNoOverlay = flag.Bool("no-overlay", false, "Start with the debug overlay hidden")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagSave      = flag.Bool("save-config", false, "Write viewer settings to the user config on exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath() string {
	return *flagConfig
}

// SaveOnExit reports whether --save-config was given.
func SaveOnExit() bool {
	return *flagSave
}

// applyFlags applies CLI overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.Overlay = true
	}
	if *flagLevel != "" {
		cfg.Level.Path = *flagLevel
	}
	if *flagCellSize > 0 {
		cfg.Collision.CellSize = float32(*flagCellSize)
	}
	if *flagRadius > 0 {
		cfg.Collision.ColliderRadius = float32(*flagRadius)
	}
	if *flagNoOverlay {
		cfg.Debug.Overlay = false
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
