// Package tile classifies terrain categories for collision.
package tile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category name is not recognised.
var ErrUnknownCategory = errors.New("unknown tile category")

// Category is a terrain kind placed on a single cell.
type Category uint8

// Category constants. Walkable kinds come first.
const (
	Empty Category = iota
	Dirt
	Grass
	YellowGrass
	Shore
	Water
	Tree
	Rock

	numCategories
)

type classification struct {
	name     string
	walkable bool
	// adjustment is a fraction of the cell size added to a body's radius
	// when testing against this cell. Negative values allow corner cutting.
	adjustment float32
}

var table = [numCategories]classification{
	Empty:       {name: "empty", walkable: true},
	Dirt:        {name: "dirt", walkable: true},
	Grass:       {name: "grass", walkable: true},
	YellowGrass: {name: "yellow_grass", walkable: true},
	Shore:       {name: "shore", walkable: true},
	Water:       {name: "water", walkable: false},
	Tree:        {name: "tree", walkable: false, adjustment: -0.2},
	Rock:        {name: "rock", walkable: false, adjustment: -0.2},
}

// IsWalkable returns true if bodies may stand on the category.
func (c Category) IsWalkable() bool {
	if c >= numCategories {
		return false
	}
	return table[c].walkable
}

// RadiusAdjustment returns the collision radius adjustment as a fraction of
// the cell size. Zero for plain blockers, negative for trees and rocks.
func (c Category) RadiusAdjustment() float32 {
	if c >= numCategories {
		return 0
	}
	return table[c].adjustment
}

// String returns the category name used by level files.
func (c Category) String() string {
	if c >= numCategories {
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
	return table[c].name
}

// Parse returns the category with the given name. Matching ignores case and
// accepts '-' in place of '_'.
func Parse(name string) (Category, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for c := Category(0); c < numCategories; c++ {
		if table[c].name == key {
			return c, nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// All returns every category in declaration order.
func All() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// MaxRadiusAdjustment returns the largest adjustment in the table.
func MaxRadiusAdjustment() float32 {
	max := table[0].adjustment
	for _, row := range table[1:] {
		if row.adjustment > max {
			max = row.adjustment
		}
	}
	return max
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c >= numCategories {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
