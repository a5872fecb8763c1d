package debug

import (
	stdmath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/pkg/math"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

// mockGrid builds a 4x3 grid of 10-unit cells with a rock, a water cell and
// a shore cell.
func mockGrid() *collision.Grid {
	g := collision.NewGrid(4, 3, 10, math.Vec2{})
	g.SetTile(3, 1, tile.Rock)
	g.SetTile(2, 2, tile.Water)
	g.SetTile(1, 2, tile.Shore)
	return g
}

func TestNewOverlayRendererNilGrid(t *testing.T) {
	if NewOverlayRenderer(nil) != nil {
		t.Error("expected nil renderer for nil grid")
	}
}

func TestGenerateWalkableOverlay(t *testing.T) {
	o := NewOverlayRenderer(mockGrid())

	quads := o.GenerateWalkableOverlay(0, 0, 4, 3)
	if len(quads) != 12 {
		t.Fatalf("expected 12 quads, got %d", len(quads))
	}

	// Row-major order: index = y*4 + x
	tests := []struct {
		x, y int
		want Color
	}{
		{0, 0, ColorWalkable},
		{3, 1, ColorBlocked},
		{2, 2, ColorBlocked},
		{1, 2, ColorShore},
	}
	for _, tt := range tests {
		q := quads[tt.y*4+tt.x]
		if q.Color != tt.want {
			t.Errorf("cell (%d,%d): color = %v, want %v", tt.x, tt.y, q.Color, tt.want)
		}
	}

	rock := quads[1*4+3]
	if rock.Min != (math.Vec2{X: 30, Y: 10}) || rock.Max != (math.Vec2{X: 40, Y: 20}) {
		t.Errorf("rock quad = %v..%v, want (30,10)..(40,20)", rock.Min, rock.Max)
	}
}

func TestOverlayClampsRange(t *testing.T) {
	o := NewOverlayRenderer(mockGrid())

	if got := len(o.GenerateWalkableOverlay(-5, -5, 100, 100)); got != 12 {
		t.Errorf("expected 12 quads after clamping, got %d", got)
	}
	if got := len(o.GenerateCategoryOverlay(2, 1, 3, 2)); got != 1 {
		t.Errorf("expected 1 quad, got %d", got)
	}
	if got := o.GenerateGridLines(3, 3, 1, 1); got != nil {
		t.Errorf("expected no lines for empty range, got %d", len(got))
	}
}

func TestGenerateGridLines(t *testing.T) {
	o := NewOverlayRenderer(mockGrid())

	lines := o.GenerateGridLines(0, 0, 4, 3)
	// 5 vertical + 4 horizontal
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(lines))
	}
	last := lines[len(lines)-1]
	if last.From != (math.Vec2{X: 0, Y: 30}) || last.To != (math.Vec2{X: 40, Y: 30}) {
		t.Errorf("top edge = %v..%v", last.From, last.To)
	}
}

func TestCategoryColorsDistinct(t *testing.T) {
	seen := make(map[Color]tile.Category)
	for _, c := range tile.All() {
		col := CategoryColor(c)
		if other, dup := seen[col]; dup {
			t.Errorf("%s and %s share color %v", c, other, col)
		}
		seen[col] = c
	}
}

func TestGetTileInfo(t *testing.T) {
	o := NewOverlayRenderer(mockGrid())

	info := o.GetTileInfo(3, 1)
	if info == nil {
		t.Fatal("expected tile info")
	}
	if info.Category != tile.Rock || info.Walkable {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Center != (math.Vec2{X: 35, Y: 15}) {
		t.Errorf("center = %v, want (35,15)", info.Center)
	}

	if o.GetTileInfo(4, 0) != nil {
		t.Error("expected nil info out of bounds")
	}
}

func TestNearestObstacle(t *testing.T) {
	o := NewOverlayRenderer(mockGrid())
	p := math.Vec2{X: 5, Y: 5}

	info, d, ok := o.NearestObstacle(p, 3)
	if !ok {
		t.Fatal("expected an obstacle within 3 cells")
	}
	// Water corner (20,20) is closer than the rock corner (30,10)
	if info.X != 2 || info.Y != 2 {
		t.Errorf("nearest = (%d,%d), want (2,2)", info.X, info.Y)
	}
	want := float32(stdmath.Sqrt(450))
	if stdmath.Abs(float64(d-want)) > 1e-3 {
		t.Errorf("distance = %v, want %v", d, want)
	}

	if _, _, ok := o.NearestObstacle(p, 1); ok {
		t.Error("expected no obstacle within 1 cell")
	}
}

func TestMarkBody(t *testing.T) {
	o := NewOverlayRenderer(mockGrid())

	t.Run("inside blocked cell", func(t *testing.T) {
		m := o.MarkBody(math.Vec2{X: 35, Y: 15}, 4, 2)
		if m.CellX != 3 || m.CellY != 1 || !m.InBounds {
			t.Errorf("cell = (%d,%d) in=%v", m.CellX, m.CellY, m.InBounds)
		}
		if m.CellWalkable || m.Clear {
			t.Error("expected blocked, not clear")
		}
		if m.Obstacle == nil || m.ObstacleDistance != 0 {
			t.Errorf("expected own cell as obstacle at distance 0, got %+v %v", m.Obstacle, m.ObstacleDistance)
		}
		// circle + cell outline + cross + obstacle line
		if got := len(o.Geometry(m, 8)); got != 8+4+2+1 {
			t.Errorf("geometry lines = %d, want 15", got)
		}
	})

	t.Run("open ground", func(t *testing.T) {
		m := o.MarkBody(math.Vec2{X: 5, Y: 5}, 4, 3)
		if !m.CellWalkable || !m.Clear {
			t.Error("expected walkable and clear")
		}
		if got := len(o.Geometry(m, 8)); got != 8+4+1 {
			t.Errorf("geometry lines = %d, want 13", got)
		}
	})

	t.Run("outside grid", func(t *testing.T) {
		m := o.MarkBody(math.Vec2{X: -15, Y: 5}, 4, 0)
		if m.InBounds || m.CellWalkable || m.Clear {
			t.Errorf("expected out of bounds and blocked, got %+v", m)
		}
		if m.Obstacle != nil {
			t.Error("out-of-bounds cells are not reported as obstacles")
		}
	})
}

func TestCircleOutline(t *testing.T) {
	if CircleOutline(math.Vec2{}, 0, 16, ColorBody) != nil {
		t.Error("expected no outline for zero radius")
	}

	lines := CircleOutline(math.Vec2{X: 1, Y: 2}, 5, 3, ColorBody)
	if len(lines) != MinCircleSegments {
		t.Fatalf("expected %d segments, got %d", MinCircleSegments, len(lines))
	}
	if lines[len(lines)-1].To != lines[0].From {
		t.Error("outline is not closed")
	}
	for _, l := range lines {
		d := l.From.Distance(math.Vec2{X: 1, Y: 2})
		if stdmath.Abs(float64(d-5)) > 1e-3 {
			t.Errorf("point %v is %v from center", l.From, d)
		}
	}
}

func TestRasterize(t *testing.T) {
	g := collision.NewGrid(2, 1, 10, math.Vec2{X: -10, Y: -5})
	g.SetTile(1, 0, tile.Rock)
	o := NewOverlayRenderer(g)

	img := o.Rasterize(o.GenerateWalkableOverlay(0, 0, 2, 1), 4)
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("image size = %dx%d, want 8x4", b.Dx(), b.Dy())
	}
	if got := img.NRGBAAt(1, 1); got != ColorWalkable.NRGBA() {
		t.Errorf("left pixel = %v, want walkable", got)
	}
	if got := img.NRGBAAt(6, 1); got != ColorBlocked.NRGBA() {
		t.Errorf("right pixel = %v, want blocked", got)
	}
}

func TestRasterizeFlipsY(t *testing.T) {
	g := collision.NewGrid(1, 2, 10, math.Vec2{})
	g.SetTile(0, 1, tile.Rock)
	o := NewOverlayRenderer(g)

	img := o.Rasterize(o.GenerateWalkableOverlay(0, 0, 1, 2), 2)
	if got := img.NRGBAAt(0, 0); got != ColorBlocked.NRGBA() {
		t.Errorf("top pixel = %v, want blocked (grid row 1)", got)
	}
	if got := img.NRGBAAt(0, 3); got != ColorWalkable.NRGBA() {
		t.Errorf("bottom pixel = %v, want walkable (grid row 0)", got)
	}
}

func TestScreenshotCapture(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "overlay")

	if _, err := sc.CaptureFromPixels(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}

	name, err := sc.CaptureFromPixels(make([]byte, 2*2*4), 2, 2)
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if filepath.Dir(name) != dir || filepath.Ext(name) != ".png" {
		t.Errorf("unexpected filename %s", name)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}
