// Package camera maps between world space and screen pixels for the 2D viewer.
package camera

import (
	"github.com/Faultbox/tilecollide/pkg/math"
)

// Camera is a top-down camera. World Y points up; screen Y points down.
type Camera struct {
	// Center is the world point shown in the middle of the viewport.
	Center math.Vec2

	// Zoom is screen pixels per world unit.
	Zoom    float32
	MinZoom float32
	MaxZoom float32

	ZoomSensitivity float32

	// Viewport size in pixels
	Width, Height int
}

// New creates a camera with default settings for a viewport.
func New(width, height int) *Camera {
	return &Camera{
		Zoom:            1,
		MinZoom:         0.1,
		MaxZoom:         16,
		ZoomSensitivity: 0.1,
		Width:           width,
		Height:          height,
	}
}

// Resize updates the viewport size.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// ToScreen converts a world point to screen pixels.
func (c *Camera) ToScreen(p math.Vec2) (x, y float32) {
	d := p.Sub(c.Center).Scale(c.Zoom)
	return float32(c.Width)/2 + d.X, float32(c.Height)/2 - d.Y
}

// ToWorld converts screen pixels to a world point.
func (c *Camera) ToWorld(x, y float32) math.Vec2 {
	return math.Vec2{
		X: c.Center.X + (x-float32(c.Width)/2)/c.Zoom,
		Y: c.Center.Y - (y-float32(c.Height)/2)/c.Zoom,
	}
}

// HandleZoom scales the zoom by a scroll wheel delta.
func (c *Camera) HandleZoom(delta float32) {
	c.Zoom += delta * c.Zoom * c.ZoomSensitivity
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

// Follow moves the center toward target by factor in [0, 1].
// A factor of 1 snaps to the target.
func (c *Camera) Follow(target math.Vec2, factor float32) {
	factor = clamp(factor, 0, 1)
	c.Center = c.Center.Add(target.Sub(c.Center).Scale(factor))
}

// FitToBounds centers on a world rectangle and zooms so it fills the viewport.
func (c *Camera) FitToBounds(min, max math.Vec2) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.Sub(min)
	if size.X <= 0 || size.Y <= 0 || c.Width <= 0 || c.Height <= 0 {
		return
	}
	zx := float32(c.Width) / size.X
	zy := float32(c.Height) / size.Y
	c.Zoom = clamp(min32(zx, zy), c.MinZoom, c.MaxZoom)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
