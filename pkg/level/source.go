// Package level loads tile placements from level files.
//
// Every source yields collision.Placement values positioned at cell centres
// under a fixed collision.Layout, with Z holding the layer height.
package level

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/tilecollide/internal/collision"
)

// Source produces the tile placements of a level.
type Source interface {
	Placements() ([]collision.Placement, error)
}

// StaticSource serves placements already held in memory, such as the output
// of a procedural generator.
type StaticSource []collision.Placement

// Placements returns the stored placements.
func (s StaticSource) Placements() ([]collision.Placement, error) {
	return s, nil
}

// Format names a level file format.
type Format string

// Supported formats.
const (
	FormatAuto Format = ""
	FormatTMX  Format = "tmx"
	FormatYAML Format = "yaml"
	FormatGAT  Format = "gat"
)

// DetectFormat guesses a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tmx":
		return FormatTMX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".gat":
		return FormatGAT, nil
	default:
		return FormatAuto, fmt.Errorf("cannot detect level format of %s", path)
	}
}

// Open returns a file-backed source for path. An empty format is detected
// from the extension.
func Open(path string, format Format, layout collision.Layout) (Source, error) {
	if format == FormatAuto {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatTMX:
		return NewTMXFile(path, layout), nil
	case FormatYAML:
		return &YAMLSource{Path: path, Layout: layout}, nil
	case FormatGAT:
		return &GATSource{Path: path, Layout: layout}, nil
	default:
		return nil, fmt.Errorf("unsupported level format %q", format)
	}
}
