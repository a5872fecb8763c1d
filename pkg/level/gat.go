package level

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

// GAT format errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
)

// GATCellType is the walkability code stored per GAT cell.
type GATCellType uint32

// Cell type codes.
const (
	GATWalkable      GATCellType = 0
	GATBlocked       GATCellType = 1
	GATWater         GATCellType = 2
	GATWalkableWater GATCellType = 3
	GATSnipeable     GATCellType = 4
	GATBlockedSnipe  GATCellType = 5
)

// Category maps a GAT cell type to a tile category.
func (t GATCellType) Category() tile.Category {
	switch t {
	case GATWalkable:
		return tile.Grass
	case GATWater:
		return tile.Water
	case GATWalkableWater:
		return tile.Shore
	default:
		return tile.Rock
	}
}

const gatHeaderSize = 14 // magic(4) + version(2) + width(4) + height(4)

// GATSource reads placements from a Ground Altitude Table file. GAT rows
// already run bottom-up, so no flip is applied. Z is the mean corner height.
type GATSource struct {
	Path   string
	Layout collision.Layout
}

// Placements loads and parses the file.
func (s *GATSource) Placements() ([]collision.Placement, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading GAT file: %w", err)
	}
	return ParseGAT(data, s.Layout)
}

type gatCell struct {
	Heights [4]float32
	Type    GATCellType
}

// ParseGAT decodes a GAT table into one placement per cell.
func ParseGAT(data []byte, layout collision.Layout) ([]collision.Placement, error) {
	if len(data) < gatHeaderSize {
		return nil, ErrTruncatedGATData
	}
	if string(data[0:4]) != "GRAT" {
		return nil, ErrInvalidGATMagic
	}
	// Version is stored as [minor, major].
	major, minor := data[5], data[4]
	if major < 1 || major > 3 {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedGATVersion, major, minor)
	}

	r := bytes.NewReader(data[6:])
	var dims [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("%w: reading dimensions", ErrTruncatedGATData)
	}
	width, height := int(dims[0]), int(dims[1])
	if width == 0 || height == 0 || width > 4096 || height > 4096 {
		return nil, fmt.Errorf("invalid GAT dimensions: %dx%d", width, height)
	}

	out := make([]collision.Placement, 0, width*height)
	for i := 0; i < width*height; i++ {
		var cell gatCell
		if err := binary.Read(r, binary.LittleEndian, &cell); err != nil {
			return nil, fmt.Errorf("%w: cell %d", ErrTruncatedGATData, i)
		}
		h := cell.Heights
		out = append(out, collision.Placement{
			Position: layout.CellCenter(i%width, i/width).Extend((h[0] + h[1] + h[2] + h[3]) / 4),
			Category: cell.Type.Category(),
		})
	}
	return out, nil
}
