package collision

import (
	"testing"

	"github.com/Faultbox/tilecollide/pkg/math"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

func filledGrid(width, height int, c tile.Category) *Grid {
	g := NewGrid(width, height, 32, math.Vec2{})
	for i := range g.cells {
		g.cells[i] = c
	}
	return g
}

func cloneGrid(g *Grid) *Grid {
	out := NewGrid(g.width, g.height, g.cellSize, g.origin)
	copy(out.cells, g.cells)
	return out
}

func TestShorelineSurroundedWaterStays(t *testing.T) {
	g := filledGrid(3, 3, tile.Water)

	if n := DeriveShoreline(g); n != 0 {
		t.Errorf("expected no shore cells, got %d", n)
	}
	if c, _ := g.Tile(1, 1); c != tile.Water {
		t.Errorf("centre cell = %v, want water", c)
	}
}

func TestShorelineSingleWalkableNeighbor(t *testing.T) {
	g := filledGrid(3, 3, tile.Water)
	g.SetTile(0, 0, tile.Grass)

	DeriveShoreline(g)

	for _, p := range [][2]int{{1, 1}, {1, 0}, {0, 1}} {
		if c, _ := g.Tile(p[0], p[1]); c != tile.Shore {
			t.Errorf("cell (%d,%d) = %v, want shore", p[0], p[1], c)
		}
	}
	// (2,2) only touches cells that were water before the pass.
	if c, _ := g.Tile(2, 2); c != tile.Water {
		t.Errorf("cell (2,2) = %v, want water", c)
	}
}

func TestShorelineIgnoresOtherBlockers(t *testing.T) {
	g := filledGrid(3, 1, tile.Grass)
	g.SetTile(1, 0, tile.Rock)

	if n := DeriveShoreline(g); n != 0 {
		t.Errorf("rock should never become shore, got %d changes", n)
	}
}

func TestShorelineOrderIndependent(t *testing.T) {
	layout := []string{
		"~~~~~~~",
		"~~..~~~",
		"~~~~~T~",
		"~.~~~~~",
		"~~~~~~.",
	}
	g := NewGrid(len(layout[0]), len(layout), 32, math.Vec2{})
	for y, row := range layout {
		for x, ch := range row {
			switch ch {
			case '~':
				g.SetTile(x, y, tile.Water)
			case 'T':
				g.SetTile(x, y, tile.Tree)
			}
		}
	}

	forward := cloneGrid(g)
	backward := cloneGrid(g)

	order := rowMajorOrder(backward)
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	nf := DeriveShoreline(forward)
	nb := applyShoreline(backward, order)

	if nf != nb {
		t.Errorf("forward changed %d cells, backward %d", nf, nb)
	}
	for i := range forward.cells {
		if forward.cells[i] != backward.cells[i] {
			t.Errorf("cell %d differs: %v vs %v", i, forward.cells[i], backward.cells[i])
		}
	}
}
