// Package window handles the SDL2 window and 2D renderer.
package window

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tilecollide/internal/engine/camera"
	"github.com/Faultbox/tilecollide/internal/engine/debug"
	"github.com/Faultbox/tilecollide/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and its renderer.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	log       *zap.Logger
}

// New creates a new window with an accelerated renderer.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rflags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rflags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, rflags)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}
	w.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Clear fills the frame with a color.
func (w *Window) Clear(c debug.Color) {
	w.setColor(c, 255)
	w.renderer.Clear()
}

// Present shows the finished frame.
func (w *Window) Present() {
	w.renderer.Present()
}

func (w *Window) setColor(c debug.Color, alpha uint8) {
	rgba := c.NRGBA()
	w.renderer.SetDrawColor(rgba.R, rgba.G, rgba.B, alpha)
}

// DrawQuads fills world-space quads seen through cam.
func (w *Window) DrawQuads(cam *camera.Camera, quads []debug.Quad, alpha uint8) {
	for _, q := range quads {
		// World max Y is the screen top edge
		x0, y0 := cam.ToScreen(q.Min)
		x1, y1 := cam.ToScreen(q.Max)
		rect := sdl.FRect{X: x0, Y: y1, W: x1 - x0, H: y0 - y1}
		w.setColor(q.Color, alpha)
		w.renderer.FillRectF(&rect)
	}
}

// DrawLines draws world-space segments seen through cam.
func (w *Window) DrawLines(cam *camera.Camera, lines []debug.Line) {
	for _, l := range lines {
		x0, y0 := cam.ToScreen(l.From)
		x1, y1 := cam.ToScreen(l.To)
		w.setColor(l.Color, 255)
		w.renderer.DrawLineF(x0, y0, x1, y1)
	}
}

// ReadPixels returns the current frame as top-down RGBA bytes.
func (w *Window) ReadPixels() ([]byte, int, int, error) {
	width, height, err := w.renderer.GetOutputSize()
	if err != nil {
		return nil, 0, 0, err
	}
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return nil, 0, 0, fmt.Errorf("empty output %dx%d", width, height)
	}
	// ABGR8888 is R,G,B,A in memory on little-endian hosts
	if err := w.renderer.ReadPixels(nil, sdl.PIXELFORMAT_ABGR8888, unsafe.Pointer(&pixels[0]), int(width)*4); err != nil {
		return nil, 0, 0, fmt.Errorf("reading pixels: %w", err)
	}
	return pixels, int(width), int(height), nil
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
