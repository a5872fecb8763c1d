// gridview opens a level in an SDL2 window with the collision debug overlay
// and an arrow-key controlled body.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/internal/config"
	"github.com/Faultbox/tilecollide/internal/game"
	"github.com/Faultbox/tilecollide/internal/game/world"
	"github.com/Faultbox/tilecollide/internal/logger"
	"github.com/Faultbox/tilecollide/pkg/level"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if args := config.Args(); len(args) > 0 {
		cfg.Level.Path = args[0]
	}
	if cfg.Level.Path == "" {
		fmt.Fprintln(os.Stderr, "Usage: gridview [flags] <level>")
		os.Exit(1)
	}

	logger.Info("=== gridview ===", zap.String("level", cfg.Level.Path))
	logger.Sugar.Debugf("Config: %+v", cfg)

	layout := collision.CenteredLayout(cfg.Collision.CellSize, cfg.Collision.GridCols, cfg.Collision.GridRows)
	src, err := level.Open(cfg.Level.Path, level.Format(cfg.Level.Format), layout)
	if err != nil {
		logger.Error("failed to open level", zap.Error(err))
		os.Exit(1)
	}

	session := game.NewSession(world.NewManager(src, collision.NewBuilder(layout)))

	v, err := NewViewer(cfg, session)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
