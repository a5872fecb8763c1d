package collision

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/tilecollide/internal/logger"
	"github.com/Faultbox/tilecollide/pkg/math"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

// Builder errors.
var (
	ErrNoPlacements     = errors.New("no tile placements to build from")
	ErrInvalidCellSize  = errors.New("cell size must be positive")
	ErrInvalidPlacement = errors.New("tile placement position is not finite")
	ErrGridTooLarge     = errors.New("tile placements span too many cells")
)

// MaxGridExtent caps the cells a built grid may span on either axis.
const MaxGridExtent = 4096

// maxCellCoord bounds absolute cell coordinates. Beyond 2^24 float32
// positions can no longer tell neighbouring cells apart.
const maxCellCoord = 1 << 24

// Placement is a single tile spawned into the world.
// Position.Z is the layer height; the highest layer on a cell wins.
type Placement struct {
	Position math.Vec3
	Category tile.Category
}

// Layout fixes the world-to-grid mapping used while building.
type Layout struct {
	CellSize float32
	Origin   math.Vec2
}

// CenteredLayout returns a layout for a cols x rows map centred on the world origin.
func CenteredLayout(cellSize float32, cols, rows int) Layout {
	return Layout{
		CellSize: cellSize,
		Origin: math.Vec2{
			X: -cellSize * float32(cols) / 2,
			Y: -cellSize * float32(rows) / 2,
		},
	}
}

// CellOf returns the absolute grid cell of a world position under the layout.
func (l Layout) CellOf(p math.Vec2) (int, int) {
	return p.Sub(l.Origin).Div(l.CellSize).Floor()
}

// CellCenter returns the world centre of an absolute grid cell.
func (l Layout) CellCenter(x, y int) math.Vec2 {
	return math.Vec2{
		X: l.Origin.X + (float32(x)+0.5)*l.CellSize,
		Y: l.Origin.Y + (float32(y)+0.5)*l.CellSize,
	}
}

// BuildStats summarises a build pass.
type BuildStats struct {
	Placements int
	Stacked    int // placements hidden under a higher layer
	Shore      int
	MinX, MinY int
	MaxX, MaxY int
}

// Builder turns tile placements into a Grid.
type Builder struct {
	layout Layout
	stats  BuildStats
}

// NewBuilder creates a builder for the given layout.
func NewBuilder(layout Layout) *Builder {
	return &Builder{layout: layout}
}

// Layout returns the builder's layout.
func (b *Builder) Layout() Layout {
	return b.layout
}

// Stats returns statistics from the last successful build.
func (b *Builder) Stats() BuildStats {
	return b.stats
}

type layerEntry struct {
	category tile.Category
	z        float32
}

type cellKey struct {
	x, y int
}

// Build creates a grid sized to the bounding box of the placements.
// It returns ErrNoPlacements when there is nothing to build from,
// ErrInvalidPlacement for a NaN or infinite position, and ErrGridTooLarge
// when the placements span more than MaxGridExtent cells on an axis.
// A failed build never returns a grid.
func (b *Builder) Build(placements []Placement) (*Grid, error) {
	if b.layout.CellSize <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, b.layout.CellSize)
	}
	if len(placements) == 0 {
		return nil, ErrNoPlacements
	}

	stats := BuildStats{
		MinX: gomath.MaxInt, MinY: gomath.MaxInt,
		MaxX: gomath.MinInt, MaxY: gomath.MinInt,
	}
	top := make(map[cellKey]layerEntry, len(placements))

	for i, p := range placements {
		stats.Placements++

		if !p.Position.IsFinite() {
			return nil, fmt.Errorf("%w: placement %d at %v", ErrInvalidPlacement, i, p.Position)
		}
		cell := p.Position.XY().Sub(b.layout.Origin).Div(b.layout.CellSize)
		if gomath.Abs(float64(cell.X)) > maxCellCoord || gomath.Abs(float64(cell.Y)) > maxCellCoord {
			return nil, fmt.Errorf("%w: placement %d at %v is outside the addressable range",
				ErrGridTooLarge, i, p.Position)
		}

		x, y := cell.Floor()
		stats.MinX = min(stats.MinX, x)
		stats.MaxX = max(stats.MaxX, x)
		stats.MinY = min(stats.MinY, y)
		stats.MaxY = max(stats.MaxY, y)

		key := cellKey{x, y}
		existing, ok := top[key]
		if !ok {
			top[key] = layerEntry{category: p.Category, z: p.Position.Z}
			continue
		}
		stats.Stacked++
		if p.Position.Z > existing.z {
			top[key] = layerEntry{category: p.Category, z: p.Position.Z}
		}
	}

	width := stats.MaxX - stats.MinX + 1
	height := stats.MaxY - stats.MinY + 1
	if width <= 0 || height <= 0 || width > MaxGridExtent || height > MaxGridExtent {
		return nil, fmt.Errorf("%w: %dx%d (limit %d per axis)", ErrGridTooLarge, width, height, MaxGridExtent)
	}
	origin := b.layout.Origin.Add(math.Vec2{
		X: float32(stats.MinX) * b.layout.CellSize,
		Y: float32(stats.MinY) * b.layout.CellSize,
	})

	grid := NewGrid(width, height, b.layout.CellSize, origin)
	for key, entry := range top {
		grid.SetTile(key.x-stats.MinX, key.y-stats.MinY, entry.category)
	}

	stats.Shore = DeriveShoreline(grid)
	b.stats = stats

	logger.Info("collision grid built",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("placements", stats.Placements),
		zap.Int("stacked", stats.Stacked),
		zap.Int("shore", stats.Shore),
		zap.Float32("originX", origin.X),
		zap.Float32("originY", origin.Y),
	)

	return grid, nil
}
