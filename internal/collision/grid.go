// Package collision implements the tile-grid collision index and its queries.
package collision

import (
	"github.com/Faultbox/tilecollide/pkg/math"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

// Grid is a dense row-major grid of tile categories laid over world space.
// It is mutated only while being built and is read-only once published.
type Grid struct {
	cells    []tile.Category
	width    int
	height   int
	cellSize float32
	origin   math.Vec2 // world position of the (0,0) cell corner
}

// NewGrid creates a grid with every cell set to tile.Empty.
// Non-positive dimensions produce an empty grid on which every query is blocked.
func NewGrid(width, height int, cellSize float32, origin math.Vec2) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		cells:    make([]tile.Category, width*height),
		width:    width,
		height:   height,
		cellSize: cellSize,
		origin:   origin,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the edge length of a cell in world units.
func (g *Grid) CellSize() float32 { return g.cellSize }

// Origin returns the world position of the (0,0) cell corner.
func (g *Grid) Origin() math.Vec2 { return g.origin }

// Bounds returns the world-space corners covered by the grid.
func (g *Grid) Bounds() (min, max math.Vec2) {
	min = g.origin
	max = g.origin.Add(math.Vec2{
		X: float32(g.width) * g.cellSize,
		Y: float32(g.height) * g.cellSize,
	})
	return min, max
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// WorldToGrid returns the cell containing a world position.
func (g *Grid) WorldToGrid(p math.Vec2) (int, int) {
	return p.Sub(g.origin).Div(g.cellSize).Floor()
}

// GridToWorld returns the world position of a cell's centre.
func (g *Grid) GridToWorld(x, y int) math.Vec2 {
	return math.Vec2{
		X: g.origin.X + (float32(x)+0.5)*g.cellSize,
		Y: g.origin.Y + (float32(y)+0.5)*g.cellSize,
	}
}

// Tile returns the category at (x, y). ok is false when out of bounds.
func (g *Grid) Tile(x, y int) (c tile.Category, ok bool) {
	if !g.InBounds(x, y) {
		return tile.Empty, false
	}
	return g.cells[g.index(x, y)], true
}

// SetTile sets the category at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) SetTile(x, y int, c tile.Category) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[g.index(x, y)] = c
}

// IsWalkable reports whether the cell at (x, y) can be stood on.
// Cells outside the grid are never walkable.
func (g *Grid) IsWalkable(x, y int) bool {
	c, ok := g.Tile(x, y)
	return ok && c.IsWalkable()
}

// IsWorldPosWalkable reports whether the cell containing p is walkable.
func (g *Grid) IsWorldPosWalkable(p math.Vec2) bool {
	return g.IsWalkable(g.WorldToGrid(p))
}

// CountByCategory returns the number of cells per category.
func (g *Grid) CountByCategory() map[tile.Category]int {
	counts := make(map[tile.Category]int)
	for _, c := range g.cells {
		counts[c]++
	}
	return counts
}

// cellBox returns the world-space corners of a cell.
func (g *Grid) cellBox(x, y int) (min, max math.Vec2) {
	min = math.Vec2{
		X: g.origin.X + float32(x)*g.cellSize,
		Y: g.origin.Y + float32(y)*g.cellSize,
	}
	return min, min.Add(math.Splat(g.cellSize))
}

// circleIntersectsCell tests a circle against the box of cell (x, y).
// Touching counts as overlap.
func (g *Grid) circleIntersectsCell(center math.Vec2, radius float32, x, y int) bool {
	lo, hi := g.cellBox(x, y)
	closest := center.Clamp(lo, hi)
	return center.DistanceSquared(closest) <= radius*radius
}

// containsCircle reports whether the circle's bounding square lies inside the grid.
func (g *Grid) containsCircle(center math.Vec2, radius float32) bool {
	lo, hi := g.Bounds()
	return center.X-radius >= lo.X &&
		center.X+radius <= hi.X &&
		center.Y-radius >= lo.Y &&
		center.Y+radius <= hi.Y
}

// IsCircleClear reports whether a circle overlaps no blocking cell.
//
// A circle whose bounding square leaves the grid is never clear. A radius of
// zero or less degrades to a point test at center. Each blocking cell is tested
// with the radius adjusted by its category, so trees and rocks can be brushed
// past at the corners. An adjusted radius below zero is clamped to zero, which
// turns that cell into a point test: bodies smaller than the adjustment may
// overlap a tree or rock until their centre enters it.
func (g *Grid) IsCircleClear(center math.Vec2, radius float32) bool {
	if !g.containsCircle(center, radius) {
		return false
	}
	if radius <= 0 {
		return g.IsWorldPosWalkable(center)
	}

	minX, minY := center.Sub(math.Splat(radius)).Sub(g.origin).Div(g.cellSize).Floor()
	maxX, maxY := center.Add(math.Splat(radius)).Sub(g.origin).Div(g.cellSize).Floor()

	// Widen the scan for categories that inflate the obstacle footprint.
	pad := 0
	if adj := tile.MaxRadiusAdjustment(); adj > 0 {
		pad = int(adj) + 1
	}

	for gy := minY - pad; gy <= maxY+pad; gy++ {
		for gx := minX - pad; gx <= maxX+pad; gx++ {
			c, ok := g.Tile(gx, gy)
			if !ok {
				inner := gx >= minX && gx <= maxX && gy >= minY && gy <= maxY
				if inner {
					return false
				}
				continue
			}
			if c.IsWalkable() {
				continue
			}
			effective := radius + c.RadiusAdjustment()*g.cellSize
			if effective < 0 {
				effective = 0
			}
			if g.circleIntersectsCell(center, effective, gx, gy) {
				return false
			}
		}
	}
	return true
}
