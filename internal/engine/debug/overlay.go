// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/pkg/math"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Overlay colors.
var (
	ColorGrid     = Color{0.5, 0.5, 0.5}
	ColorWalkable = Color{0.0, 0.5, 0.0}
	ColorShore    = Color{0.0, 0.5, 0.5}
	ColorBlocked  = Color{0.5, 0.0, 0.0}
	ColorBody     = Color{1.0, 1.0, 1.0}
	ColorObstacle = Color{1.0, 0.6, 0.0}
)

// Quad is an axis-aligned filled rectangle in world space.
type Quad struct {
	Min, Max math.Vec2
	Color    Color
}

// Line is a segment in world space.
type Line struct {
	From, To math.Vec2
	Color    Color
}

// OverlayRenderer generates debug geometry for a collision grid.
// It only reads the grid.
type OverlayRenderer struct {
	grid *collision.Grid
}

// NewOverlayRenderer creates a new overlay renderer.
func NewOverlayRenderer(grid *collision.Grid) *OverlayRenderer {
	if grid == nil {
		return nil
	}
	return &OverlayRenderer{grid: grid}
}

// Grid returns the grid being drawn.
func (o *OverlayRenderer) Grid() *collision.Grid {
	return o.grid
}

// clamp limits a cell range to the grid. Max bounds are exclusive.
func (o *OverlayRenderer) clamp(minX, minY, maxX, maxY int) (int, int, int, int) {
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > o.grid.Width() {
		maxX = o.grid.Width()
	}
	if maxY > o.grid.Height() {
		maxY = o.grid.Height()
	}
	return minX, minY, maxX, maxY
}

// cellQuad returns the world rectangle of a cell, shrunk by inset on each side.
func (o *OverlayRenderer) cellQuad(x, y int, inset float32, c Color) Quad {
	size := o.grid.CellSize()
	min := o.grid.GridToWorld(x, y).Sub(math.Splat(size / 2))
	return Quad{
		Min:   min.Add(math.Splat(inset)),
		Max:   min.Add(math.Splat(size - inset)),
		Color: c,
	}
}

// GenerateGridLines generates cell boundary lines for a cell range.
func (o *OverlayRenderer) GenerateGridLines(minX, minY, maxX, maxY int) []Line {
	minX, minY, maxX, maxY = o.clamp(minX, minY, maxX, maxY)
	if minX >= maxX || minY >= maxY {
		return nil
	}

	size := o.grid.CellSize()
	origin := o.grid.Origin()
	x0 := origin.X + float32(minX)*size
	x1 := origin.X + float32(maxX)*size
	y0 := origin.Y + float32(minY)*size
	y1 := origin.Y + float32(maxY)*size

	lines := make([]Line, 0, (maxX-minX+1)+(maxY-minY+1))

	// Vertical lines
	for x := minX; x <= maxX; x++ {
		wx := origin.X + float32(x)*size
		lines = append(lines, Line{math.Vec2{X: wx, Y: y0}, math.Vec2{X: wx, Y: y1}, ColorGrid})
	}

	// Horizontal lines
	for y := minY; y <= maxY; y++ {
		wy := origin.Y + float32(y)*size
		lines = append(lines, Line{math.Vec2{X: x0, Y: wy}, math.Vec2{X: x1, Y: wy}, ColorGrid})
	}

	return lines
}

// GenerateWalkableOverlay generates one quad per cell colored by walkability.
// Shore is walkable but drawn separately so the derived band stands out.
func (o *OverlayRenderer) GenerateWalkableOverlay(minX, minY, maxX, maxY int) []Quad {
	minX, minY, maxX, maxY = o.clamp(minX, minY, maxX, maxY)

	var quads []Quad
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			quads = append(quads, o.cellQuad(x, y, 0, o.walkableColor(x, y)))
		}
	}
	return quads
}

func (o *OverlayRenderer) walkableColor(x, y int) Color {
	c, _ := o.grid.Tile(x, y)
	switch {
	case c == tile.Shore:
		return ColorShore
	case o.grid.IsWalkable(x, y):
		return ColorWalkable
	default:
		return ColorBlocked
	}
}

// GenerateCategoryOverlay generates one quad per cell colored by tile category.
func (o *OverlayRenderer) GenerateCategoryOverlay(minX, minY, maxX, maxY int) []Quad {
	minX, minY, maxX, maxY = o.clamp(minX, minY, maxX, maxY)

	var quads []Quad
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			c, _ := o.grid.Tile(x, y)
			quads = append(quads, o.cellQuad(x, y, 0, CategoryColor(c)))
		}
	}
	return quads
}

// CategoryColor returns the overlay color for a tile category.
func CategoryColor(c tile.Category) Color {
	switch c {
	case tile.Dirt:
		return Color{0.45, 0.3, 0.15}
	case tile.Grass:
		return Color{0.0, 0.5, 0.0}
	case tile.YellowGrass:
		return Color{0.6, 0.6, 0.1}
	case tile.Shore:
		return ColorShore
	case tile.Water:
		return Color{0.0, 0.3, 0.6}
	case tile.Tree:
		return Color{0.0, 0.25, 0.1}
	case tile.Rock:
		return Color{0.4, 0.4, 0.4}
	default:
		return Color{0.1, 0.1, 0.1}
	}
}

// TileInfo describes one grid cell.
type TileInfo struct {
	X, Y     int
	Category tile.Category
	Walkable bool
	Center   math.Vec2
}

// GetTileInfo returns information about a cell, or nil when out of bounds.
func (o *OverlayRenderer) GetTileInfo(x, y int) *TileInfo {
	c, ok := o.grid.Tile(x, y)
	if !ok {
		return nil
	}
	return &TileInfo{
		X:        x,
		Y:        y,
		Category: c,
		Walkable: c.IsWalkable(),
		Center:   o.grid.GridToWorld(x, y),
	}
}

// NearestObstacle finds the blocking cell closest to p within search cells
// of p's cell. Distance is measured to the nearest point of the cell. Ties
// go to the first cell in row-major order.
func (o *OverlayRenderer) NearestObstacle(p math.Vec2, search int) (*TileInfo, float32, bool) {
	if search < 0 {
		search = 0
	}
	cx, cy := o.grid.WorldToGrid(p)

	var best *TileInfo
	var bestDist float32
	for y := cy - search; y <= cy+search; y++ {
		for x := cx - search; x <= cx+search; x++ {
			info := o.GetTileInfo(x, y)
			if info == nil || info.Walkable {
				continue
			}
			q := o.cellQuad(x, y, 0, ColorObstacle)
			d := p.Distance(p.Clamp(q.Min, q.Max))
			if best == nil || d < bestDist {
				best = info
				bestDist = d
			}
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestDist, true
}

// BodyMarker is the debug state of one body.
type BodyMarker struct {
	Center       math.Vec2
	Radius       float32
	CellX, CellY int
	InBounds     bool
	CellWalkable bool
	Clear        bool

	Obstacle         *TileInfo
	ObstacleDistance float32
}

// MarkBody inspects a collider at center. search bounds the obstacle scan.
func (o *OverlayRenderer) MarkBody(center math.Vec2, radius float32, search int) BodyMarker {
	x, y := o.grid.WorldToGrid(center)
	m := BodyMarker{
		Center:       center,
		Radius:       radius,
		CellX:        x,
		CellY:        y,
		InBounds:     o.grid.InBounds(x, y),
		CellWalkable: o.grid.IsWalkable(x, y),
		Clear:        o.grid.IsCircleClear(center, radius),
	}
	if info, d, ok := o.NearestObstacle(center, search); ok {
		m.Obstacle = info
		m.ObstacleDistance = d
	}
	return m
}

// Geometry returns the marker's drawable parts: the collider outline, the
// containing cell outline, a cross when that cell is blocked, and a line to
// the nearest obstacle.
func (o *OverlayRenderer) Geometry(m BodyMarker, segments int) []Line {
	lines := CircleOutline(m.Center, m.Radius, segments, ColorBody)

	cell := o.cellQuad(m.CellX, m.CellY, 0, ColorBody)
	lines = append(lines, RectOutline(cell.Min, cell.Max, ColorBody)...)
	if !m.CellWalkable {
		lines = append(lines,
			Line{cell.Min, cell.Max, ColorBlocked},
			Line{math.Vec2{X: cell.Min.X, Y: cell.Max.Y}, math.Vec2{X: cell.Max.X, Y: cell.Min.Y}, ColorBlocked},
		)
	}

	if m.Obstacle != nil {
		q := o.cellQuad(m.Obstacle.X, m.Obstacle.Y, 0, ColorObstacle)
		lines = append(lines, Line{m.Center, m.Center.Clamp(q.Min, q.Max), ColorObstacle})
	}
	return lines
}
