package main

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tilecollide/internal/config"
	"github.com/Faultbox/tilecollide/internal/engine/camera"
	"github.com/Faultbox/tilecollide/internal/engine/debug"
	"github.com/Faultbox/tilecollide/internal/engine/input"
	"github.com/Faultbox/tilecollide/internal/engine/window"
	"github.com/Faultbox/tilecollide/internal/game"
	"github.com/Faultbox/tilecollide/internal/game/entity"
	"github.com/Faultbox/tilecollide/internal/game/world"
	"github.com/Faultbox/tilecollide/internal/logger"
	"github.com/Faultbox/tilecollide/pkg/math"
)

const (
	// maxFrameTime caps dt so a stalled frame cannot launch the body.
	maxFrameTime = 0.1

	// Grid lines are hidden when cells are smaller than this on screen.
	minGridLinePixels = 8

	circleSegments = 24
	overlayAlpha   = 160
	cameraFollow   = 0.15
)

var colorBackground = debug.Color{R: 0.05, G: 0.05, B: 0.08}

// Viewer runs the interactive collision view.
type Viewer struct {
	cfg     *config.Config
	running bool
	window  *window.Window
	input   *input.Input
	camera  *camera.Camera
	session *game.Session
	player  *entity.Body
	shots   *debug.ScreenshotCapture
	log     *zap.Logger

	overlay bool
	spawned bool
}

// NewViewer opens the window and adds the player body to the session.
func NewViewer(cfg *config.Config, session *game.Session) (*Viewer, error) {
	v := &Viewer{
		cfg:     cfg,
		session: session,
		overlay: cfg.Debug.Overlay,
		shots:   debug.NewScreenshotCapture("screenshots", "gridview"),
		log:     logger.Named("viewer"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:  "gridview - " + cfg.Level.Path,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.input = input.New()
	v.camera = camera.New(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Zoom > 0 {
		v.camera.Zoom = cfg.Window.Zoom
	}

	v.player = entity.NewBody(1, math.Vec2{}, cfg.Collision.ColliderRadius,
		cfg.Movement.BaseSpeed, cfg.Movement.RunMultiplier)
	session.AddBody(v.player)
	session.SetPhase(game.PhasePlaying)

	v.log.Info("viewer initialized", zap.Bool("overlay", v.overlay))
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting view loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now
		if dt > maxFrameTime {
			dt = maxFrameTime
		}

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// 2. Update
		if err := v.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		v.render()
		v.window.Present()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("gridview - %s [%s] %d fps (%.0f, %.0f) %s",
				v.cfg.Level.Path, v.session.Phase(), frameCount,
				v.player.Position.X, v.player.Position.Y, v.player.State))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if config.SaveOnExit() {
		v.saveSettings()
	}

	if v.window != nil {
		v.window.Close()
	}
}

// saveSettings writes the overlay and zoom state back to the user config so
// the next run starts where this one left off.
func (v *Viewer) saveSettings() {
	v.cfg.Debug.Overlay = v.overlay
	v.cfg.Window.Zoom = v.camera.Zoom
	if err := v.cfg.Save(); err != nil {
		v.log.Warn("failed to save config", zap.Error(err))
		return
	}
	v.log.Info("config saved", zap.String("dir", config.ConfigDir()))
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.camera.Resize(event.Width, event.Height)
		case input.EventMouseWheel:
			v.camera.HandleZoom(float32(event.Wheel))
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_F3:
		v.overlay = !v.overlay
		v.log.Debug("overlay toggled", zap.Bool("visible", v.overlay))
	case sdl.SCANCODE_P:
		if v.session.Phase() == game.PhasePaused {
			v.session.SetPhase(game.PhasePlaying)
		} else {
			v.session.SetPhase(game.PhasePaused)
		}
	case sdl.SCANCODE_R:
		v.session.World().RequestRebuild()
	case sdl.SCANCODE_F12:
		v.screenshot()
	}
}

func (v *Viewer) update(dt float32) error {
	v.player.Steer(v.input.Direction(), v.input.Running())

	if err := v.session.Tick(dt); err != nil {
		return err
	}

	grid := v.session.World().Current()
	if grid == nil {
		return nil
	}
	if !v.spawned {
		v.spawn()
	}
	v.camera.Follow(v.player.Position, cameraFollow)
	return nil
}

// spawn moves the player onto open ground once the first grid exists.
func (v *Viewer) spawn() {
	grid := v.session.World().Current()
	pos, ok := world.FindSpawn(grid, v.player.ColliderPosition(), v.player.Collider.Radius)
	if !ok {
		v.log.Warn("no open cell fits the player; leaving it at the origin")
	} else {
		v.player.Position = pos.Sub(v.player.Collider.Offset)
	}
	v.camera.Center = v.player.Position
	v.spawned = true
	v.log.Info("player spawned", zap.Float32("x", v.player.Position.X), zap.Float32("y", v.player.Position.Y))
}

func (v *Viewer) render() {
	v.window.Clear(colorBackground)

	grid := v.session.World().Current()
	if grid == nil {
		return
	}
	overlay := debug.NewOverlayRenderer(grid)

	// Visible cell range, padded by one cell
	minX, maxY := grid.WorldToGrid(v.camera.ToWorld(0, 0))
	maxX, minY := grid.WorldToGrid(v.camera.ToWorld(float32(v.camera.Width), float32(v.camera.Height)))
	minX, minY, maxX, maxY = minX-1, minY-1, maxX+2, maxY+2

	v.window.DrawQuads(v.camera, overlay.GenerateCategoryOverlay(minX, minY, maxX, maxY), 255)

	if v.overlay {
		v.window.DrawQuads(v.camera, overlay.GenerateWalkableOverlay(minX, minY, maxX, maxY), overlayAlpha)
		if grid.CellSize()*v.camera.Zoom >= minGridLinePixels {
			v.window.DrawLines(v.camera, overlay.GenerateGridLines(minX, minY, maxX, maxY))
		}
		marker := overlay.MarkBody(v.player.ColliderPosition(), v.player.Collider.Radius, v.cfg.Debug.ObstacleSearch)
		v.window.DrawLines(v.camera, overlay.Geometry(marker, circleSegments))
		return
	}

	v.window.DrawLines(v.camera, debug.CircleOutline(v.player.ColliderPosition(), v.player.Collider.Radius, circleSegments, debug.ColorBody))
}

func (v *Viewer) screenshot() {
	pixels, w, h, err := v.window.ReadPixels()
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	name, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}
