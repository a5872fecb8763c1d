package debug

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// Rasterize draws quads onto an image covering the whole grid, pixelsPerCell
// pixels to a cell. World Y points up, so the image is flipped to put the
// top grid row first.
func (o *OverlayRenderer) Rasterize(quads []Quad, pixelsPerCell int) *image.NRGBA {
	if pixelsPerCell < 1 {
		pixelsPerCell = 1
	}
	w := o.grid.Width() * pixelsPerCell
	h := o.grid.Height() * pixelsPerCell
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	scale := float32(pixelsPerCell) / o.grid.CellSize()
	origin := o.grid.Origin()
	for _, q := range quads {
		x0 := int((q.Min.X - origin.X) * scale)
		y0 := int((q.Min.Y - origin.Y) * scale)
		x1 := int((q.Max.X - origin.X) * scale)
		y1 := int((q.Max.Y - origin.Y) * scale)
		c := q.Color.NRGBA()
		for y := max(y0, 0); y < min(y1, h); y++ {
			for x := max(x0, 0); x < min(x1, w); x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}

	return imaging.FlipV(img)
}

// NRGBA converts the color to an opaque 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}

// ScreenshotCapture writes timestamped overlay images.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// CaptureFromPixels saves raw top-down RGBA pixel data, width*height*4 bytes.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves an existing image.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	if err := imaging.Save(img, filename); err != nil {
		return "", fmt.Errorf("saving %s: %w", filename, err)
	}
	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
