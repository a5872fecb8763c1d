package world

import (
	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/pkg/math"
)

// FindSpawn returns a position where a collider of the given radius fits,
// preferring near itself and then cell centres in growing square rings
// around it. Only rings that cross the grid are visited, and only their
// perimeter cells are tested. It returns false when no cell fits.
func FindSpawn(grid *collision.Grid, near math.Vec2, radius float32) (math.Vec2, bool) {
	if grid == nil || grid.Width() == 0 || grid.Height() == 0 {
		return math.Vec2{}, false
	}
	if grid.IsCircleClear(near, radius) {
		return near, true
	}

	w, h := grid.Width(), grid.Height()
	cx, cy := grid.WorldToGrid(near)

	// Chebyshev distance from (cx, cy) to the nearest and farthest grid cells.
	minRing := max(0, -cx, cx-(w-1), -cy, cy-(h-1))
	maxRing := max(abs(cx), abs(cx-(w-1)), abs(cy), abs(cy-(h-1)))

	try := func(x, y int) (math.Vec2, bool) {
		p := grid.GridToWorld(x, y)
		return p, grid.IsCircleClear(p, radius)
	}

	for r := minRing; r <= maxRing; r++ {
		for y := max(cy-r, 0); y <= min(cy+r, h-1); y++ {
			if y == cy-r || y == cy+r {
				for x := max(cx-r, 0); x <= min(cx+r, w-1); x++ {
					if p, ok := try(x, y); ok {
						return p, true
					}
				}
				continue
			}
			if x := cx - r; x >= 0 && x < w {
				if p, ok := try(x, y); ok {
					return p, true
				}
			}
			if x := cx + r; r > 0 && x >= 0 && x < w {
				if p, ok := try(x, y); ok {
					return p, true
				}
			}
		}
	}
	return math.Vec2{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
