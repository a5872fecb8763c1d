package level

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lafriks/go-tiled"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

// TileTypeProperty is the Tiled property holding a tile category name.
const TileTypeProperty = "tile_type"

// TMXSource reads placements from a Tiled map.
//
// Each tile layer is one height layer, in file order. A tile's category is
// taken from its tileset tile property, or from the layer property when the
// tile has none. Tiles with neither are decoration and are skipped.
type TMXSource struct {
	FS     fs.FS
	Path   string
	Layout collision.Layout
}

// NewTMXFile returns a source for a .tmx file on disk. Tilesets are resolved
// relative to the map's directory.
func NewTMXFile(path string, layout collision.Layout) *TMXSource {
	return &TMXSource{
		FS:     os.DirFS(filepath.Dir(path)),
		Path:   filepath.Base(path),
		Layout: layout,
	}
}

// Placements parses the map.
func (s *TMXSource) Placements() ([]collision.Placement, error) {
	m, err := tiled.LoadFile(s.Path, tiled.WithFileSystem(s.FS))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", s.Path, err)
	}
	return placementsFromTMX(m, s.Layout)
}

func placementsFromTMX(m *tiled.Map, layout collision.Layout) ([]collision.Placement, error) {
	var out []collision.Placement

	for z, layer := range m.Layers {
		layerCategory, hasLayerCategory, err := layerTileType(layer)
		if err != nil {
			return nil, err
		}

		for row := 0; row < m.Height; row++ {
			for col := 0; col < m.Width; col++ {
				idx := row*m.Width + col
				if idx >= len(layer.Tiles) {
					continue
				}
				t := layer.Tiles[idx]
				if t == nil || t.IsNil() {
					continue
				}

				category, ok, err := tilesetTileType(t)
				if err != nil {
					return nil, fmt.Errorf("layer %q (%d,%d): %w", layer.Name, col, row, err)
				}
				if !ok {
					if !hasLayerCategory {
						continue
					}
					category = layerCategory
				}

				// TMX rows run downwards; world y runs up.
				y := m.Height - 1 - row
				out = append(out, collision.Placement{
					Position: layout.CellCenter(col, y).Extend(float32(z)),
					Category: category,
				})
			}
		}
	}
	return out, nil
}

func layerTileType(layer *tiled.Layer) (tile.Category, bool, error) {
	name := layer.Properties.GetString(TileTypeProperty)
	if name == "" {
		return tile.Empty, false, nil
	}
	c, err := tile.Parse(name)
	if err != nil {
		return tile.Empty, false, fmt.Errorf("layer %q: %w", layer.Name, err)
	}
	return c, true, nil
}

func tilesetTileType(t *tiled.LayerTile) (tile.Category, bool, error) {
	if t.Tileset == nil {
		return tile.Empty, false, nil
	}
	ts, err := t.Tileset.GetTilesetTile(t.ID)
	if err != nil {
		// Tiles without a <tile> entry carry no properties.
		return tile.Empty, false, nil
	}
	name := ts.Properties.GetString(TileTypeProperty)
	if name == "" {
		return tile.Empty, false, nil
	}
	c, err := tile.Parse(name)
	if err != nil {
		return tile.Empty, false, err
	}
	return c, true, nil
}
