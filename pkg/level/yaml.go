package level

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

// YAMLLevel is the on-disk layout of a YAML level.
//
// Layers are ASCII maps, top row first, whose characters are looked up in
// Legend. Placements list individual tiles by absolute cell. Both may be used
// together; explicit placements default to the layer above all ASCII layers.
type YAMLLevel struct {
	Name       string            `yaml:"name"`
	Legend     map[string]string `yaml:"legend"`
	Layers     []YAMLLayer       `yaml:"layers"`
	Placements []YAMLPlacement   `yaml:"placements"`
}

// YAMLLayer is one ASCII height layer.
type YAMLLayer struct {
	Z    *float32 `yaml:"z"`
	Rows []string `yaml:"rows"`
}

// YAMLPlacement is a single tile at an absolute cell.
type YAMLPlacement struct {
	X    int      `yaml:"x"`
	Y    int      `yaml:"y"`
	Z    *float32 `yaml:"z"`
	Tile string   `yaml:"tile"`
}

// YAMLSource reads placements from a YAML level file.
type YAMLSource struct {
	Path   string
	Layout collision.Layout
}

// Placements loads and expands the file.
func (s *YAMLSource) Placements() ([]collision.Placement, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", s.Path, err)
	}
	return ParseYAML(data, s.Layout)
}

// ParseYAML expands a YAML level into placements. Spaces in ASCII rows are
// holes unless the legend maps them.
func ParseYAML(data []byte, layout collision.Layout) ([]collision.Placement, error) {
	var lvl YAMLLevel
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("decoding level: %w", err)
	}

	legend := make(map[rune]tile.Category, len(lvl.Legend))
	for key, name := range lvl.Legend {
		r := []rune(key)
		if len(r) != 1 {
			return nil, fmt.Errorf("legend key %q must be a single character", key)
		}
		c, err := tile.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("legend %q: %w", key, err)
		}
		legend[r[0]] = c
	}

	var out []collision.Placement
	var top float32
	for i, layer := range lvl.Layers {
		z := float32(i)
		if layer.Z != nil {
			z = *layer.Z
		}
		top = max(top, z+1)

		rows := len(layer.Rows)
		for row, line := range layer.Rows {
			y := rows - 1 - row
			for x, ch := range []rune(line) {
				c, ok := legend[ch]
				if !ok {
					if ch == ' ' {
						continue
					}
					return nil, fmt.Errorf("layer %d row %d: no legend entry for %q", i, row, ch)
				}
				out = append(out, collision.Placement{
					Position: layout.CellCenter(x, y).Extend(z),
					Category: c,
				})
			}
		}
	}

	for i, p := range lvl.Placements {
		c, err := tile.Parse(p.Tile)
		if err != nil {
			return nil, fmt.Errorf("placement %d: %w", i, err)
		}
		z := top
		if p.Z != nil {
			z = *p.Z
		}
		out = append(out, collision.Placement{
			Position: layout.CellCenter(p.X, p.Y).Extend(z),
			Category: c,
		})
	}
	return out, nil
}
