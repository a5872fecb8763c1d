package collision

import "github.com/Faultbox/tilecollide/pkg/tile"

// neighbors8 lists the 8-connected offsets around a cell.
var neighbors8 = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// DeriveShoreline reclassifies every water cell that touches walkable ground
// (8-connected) as shore and returns how many cells changed.
func DeriveShoreline(g *Grid) int {
	return applyShoreline(g, rowMajorOrder(g))
}

// applyShoreline scans cells in the given order. All tests read the grid as it
// was before the pass, so the result does not depend on order.
func applyShoreline(g *Grid, order [][2]int) int {
	var shores [][2]int
	for _, cell := range order {
		x, y := cell[0], cell[1]
		if c, ok := g.Tile(x, y); !ok || c != tile.Water {
			continue
		}
		for _, d := range neighbors8 {
			if g.IsWalkable(x+d[0], y+d[1]) {
				shores = append(shores, cell)
				break
			}
		}
	}

	for _, cell := range shores {
		g.SetTile(cell[0], cell[1], tile.Shore)
	}
	return len(shores)
}

func rowMajorOrder(g *Grid) [][2]int {
	order := make([][2]int, 0, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			order = append(order, [2]int{x, y})
		}
	}
	return order
}
